package utils_test

import (
	"testing"

	"github.com/jrsteele09/school-portal/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestPtrValue(t *testing.T) {
	require.Equal(t, "title", utils.Value(utils.Ptr("title")))
	require.Equal(t, 0, utils.Value[int](nil))
}
