package projects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyPlannerFormatsKeys(t *testing.T) {
	p := NewKeyPlanner(fixedNow)
	assert.Equal(t, "public/1700000000000-Fundacao_Obra.png", p.Next("Fundação Obra.png"))
	assert.Equal(t, "public/1700000000000-a_b.jpg", p.Next("a/b.jpg"))
}

func TestKeyPlannerSuffixesDuplicates(t *testing.T) {
	p := NewKeyPlanner(fixedNow)
	assert.Equal(t, "public/1700000000000-foto.png", p.Next("foto.png"))
	assert.Equal(t, "public/1700000000000-foto-1.png", p.Next("foto.png"))
	assert.Equal(t, "public/1700000000000-foto-2.png", p.Next("foto.png"))
	assert.Equal(t, "public/1700000000000-planta", p.Next("planta"))
	assert.Equal(t, "public/1700000000000-planta-1", p.Next("planta"))
}

func TestKeyPlannerFallsBackForEmptyNames(t *testing.T) {
	p := NewKeyPlanner(fixedNow)
	assert.Equal(t, "public/1700000000000-imagem", p.Next(""))
	assert.Equal(t, "public/1700000000000-imagem-1", p.Next("   "))
}

func TestParseFloorCount(t *testing.T) {
	for raw, want := range map[string]int{" 12 ": 12, "0": 0, "-3": -3} {
		n, err := ParseFloorCount(raw)
		assert.NoError(t, err, raw)
		assert.Equal(t, want, n, raw)
	}

	for _, raw := range []string{"", "abc", "2.5", "3 andares"} {
		_, err := ParseFloorCount(raw)
		assert.ErrorIs(t, err, ErrInvalidFloorCount, raw)
	}
}
