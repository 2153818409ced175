package submissions

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/analysis"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/intake"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/projects"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/storage/object"
)

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, GenericMessage, UserMessage(errors.New("boom")))
	assert.Equal(t, "Falha na análise completa pela IA.", UserMessage(fmt.Errorf("wrap: %w", &analysis.Error{Err: errors.New("x")})))
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		out  Outcome
		want int
	}{
		{"succeeded", Outcome{State: StateSucceeded}, http.StatusCreated},
		{"validation", Outcome{State: StateFailed, Err: intake.ValidationErrors{intake.FieldCity: "x"}}, http.StatusUnprocessableEntity},
		{"encoding", Outcome{State: StateFailed, Err: &intake.EncodingError{FileName: "a", Err: intake.ErrEmptyFile}}, http.StatusUnprocessableEntity},
		{"analysis", Outcome{State: StateFailed, Err: &analysis.Error{Err: errors.New("x")}}, http.StatusBadGateway},
		{"upload", Outcome{State: StateFailed, Err: &projects.UploadError{FileName: "a", Err: errors.New("x")}}, http.StatusBadGateway},
		{"bucket", Outcome{State: StateFailed, Err: &projects.UploadError{FileName: "a", Err: object.ErrBucketNotFound}}, http.StatusInternalServerError},
		{"floors", Outcome{State: StateFailed, Err: &projects.PersistenceError{Err: projects.ErrInvalidFloorCount}}, http.StatusUnprocessableEntity},
		{"insert", Outcome{State: StateFailed, Err: &projects.PersistenceError{Err: errors.New("x")}}, http.StatusInternalServerError},
		{"in flight", Outcome{State: StateFailed, Err: ErrInFlight}, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.out))
		})
	}
}

func TestGuardOnePerKey(t *testing.T) {
	g := NewGuard()
	release, err := g.Acquire("session-a")
	assert.NoError(t, err)
	assert.True(t, g.Busy("session-a"))

	_, err = g.Acquire("session-a")
	assert.ErrorIs(t, err, ErrInFlight)

	other, err := g.Acquire("session-b")
	assert.NoError(t, err)
	other()

	release()
	release()
	assert.False(t, g.Busy("session-a"))
	again, err := g.Acquire("session-a")
	assert.NoError(t, err)
	again()
}
