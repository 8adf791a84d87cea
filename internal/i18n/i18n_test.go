package i18n

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDefaultsToSpanish(t *testing.T) {
	assert.Equal(t, Spanish, Parse("es"))
	assert.Equal(t, English, Parse("en"))
	assert.Equal(t, Spanish, Parse(""))
	assert.Equal(t, Spanish, Parse("fr"))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Desconocido", UnknownCustomer(Spanish))
	assert.Equal(t, "Unknown", UnknownCustomer(English))
	assert.Equal(t, "Otros", OtherCategory(Spanish))
	assert.Equal(t, "Other", OtherCategory(English))
}

func TestShortWeekday(t *testing.T) {
	assert.Equal(t, "dom", ShortWeekday(Spanish, time.Sunday))
	assert.Equal(t, "sáb", ShortWeekday(Spanish, time.Saturday))
	assert.Equal(t, "Mon", ShortWeekday(English, time.Monday))
	// unknown language falls back to Spanish labels
	assert.Equal(t, "vie", ShortWeekday(Language("de"), time.Friday))
}
