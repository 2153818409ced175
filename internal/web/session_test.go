package web

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/intake"
)

func TestSessionExpiryReleasesPreviews(t *testing.T) {
	now := time.Unix(1700000000, 0)
	store := NewSessionStore(time.Hour, nil)
	store.Now = func() time.Time { return now }

	sess, created := store.Load("")
	assert.True(t, created)
	sess.mu.Lock()
	_, _ = sess.form.AddAttachments(intake.SequenceCurrentSituation, intake.Attachment{Name: "a.png", Data: []byte("a")})
	store.refreshPreviews(sess, intake.SequenceCurrentSituation)
	sess.mu.Unlock()
	assert.Equal(t, 1, store.Previews.Len())

	now = now.Add(30 * time.Minute)
	again, created := store.Load(sess.ID)
	assert.False(t, created)
	assert.Same(t, sess, again)

	now = now.Add(2 * time.Hour)
	fresh, created := store.Load(sess.ID)
	assert.True(t, created)
	assert.NotEqual(t, sess.ID, fresh.ID)
	assert.Zero(t, store.Previews.Len())
	assert.Equal(t, 1, store.Len())
}

func TestRefreshPreviewsReleasesPreviousTokens(t *testing.T) {
	store := NewSessionStore(time.Hour, nil)
	sess, _ := store.Load("")
	sess.mu.Lock()
	defer sess.mu.Unlock()

	for i := 0; i < 20; i++ {
		_, _ = sess.form.AddAttachments(intake.SequenceFinalProject, intake.Attachment{Name: "p.png", Data: []byte("p")})
		store.refreshPreviews(sess, intake.SequenceFinalProject)
		if i%2 == 1 {
			_ = sess.form.RemoveAttachment(intake.SequenceFinalProject, 0)
			store.refreshPreviews(sess, intake.SequenceFinalProject)
		}
	}
	assert.Equal(t, len(sess.form.Data.FinalProjectImages), store.Previews.Len())
}
