package adoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttributes_Apply(t *testing.T) {
	attrs := Attributes{"version": "2.1", "dir": "sub"}

	assert.Equal(t, "release 2.1 in sub", attrs.Apply("release {version} in {dir}"))
	assert.Equal(t, "include::sub/_a.adoc[]", attrs.Apply("include::{dir}/_a.adoc[]"))
}

func TestAttributes_UnknownPlaceholderSurvives(t *testing.T) {
	attrs := Attributes{"version": "2.1"}
	assert.Equal(t, "keep {unknown} verbatim", attrs.Apply("keep {unknown} verbatim"))
}

func TestAttributes_Empty(t *testing.T) {
	assert.Equal(t, "{anything}", Attributes(nil).Apply("{anything}"))
}
