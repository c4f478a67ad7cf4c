package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatorSlug(t *testing.T) {
	v := DefaultValidator{}

	valid := []string{"b", "general", "off-topic", "b2", "0day"}
	for _, slug := range valid {
		assert.NoError(t, v.Slug(slug), "slug %q should be valid", slug)
	}

	invalid := []string{"", "-leading", "UPPER", "has space", "way/off", strings.Repeat("a", 33)}
	for _, slug := range invalid {
		assert.Error(t, v.Slug(slug), "slug %q should be invalid", slug)
	}
}

func TestValidatorName(t *testing.T) {
	v := DefaultValidator{}

	assert.NoError(t, v.Name("General"))
	assert.Error(t, v.Name(""))
	assert.Error(t, v.Name("   "))
	assert.Error(t, v.Name(strings.Repeat("x", 81)))
}

func TestValidatorTitle(t *testing.T) {
	v := DefaultValidator{}

	assert.NoError(t, v.Title("A perfectly normal topic"))
	assert.Error(t, v.Title(""))
	assert.Error(t, v.Title(strings.Repeat("x", 201)))
}

func TestValidatorBody(t *testing.T) {
	v := DefaultValidator{}

	assert.NoError(t, v.Body("hello"))
	assert.Error(t, v.Body(""))
	assert.Error(t, v.Body(" \t\n"))
	assert.Error(t, v.Body(strings.Repeat("x", 64*1024+1)))
}
