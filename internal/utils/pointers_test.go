package utils_test

import (
	"testing"

	"github.com/jrsteele09/billing-console/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestPointers(t *testing.T) {
	status := utils.Ptr(401)
	require.Equal(t, 401, utils.ValueOr(status, 0))
	require.Equal(t, 0, utils.ValueOr[int](nil, 0))
	require.Equal(t, "n/a", utils.ValueOr[string](nil, "n/a"))
}
