package system

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestAppFs_DefaultsToOsFs(t *testing.T) {
	assert.IsType(t, &afero.OsFs{}, AppFs)
}
