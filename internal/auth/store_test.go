package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Empty(t, s.Token())

	require.NoError(t, s.Save("sid-1"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", reopened.Token())

	require.NoError(t, reopened.Clear())
	assert.Empty(t, reopened.Token())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// clearing twice is fine
	require.NoError(t, reopened.Clear())
}

func TestAllowed(t *testing.T) {
	assert.ErrorIs(t, Allowed(nil, ViewShop), ErrNotAuthenticated)

	admin := newUser("admin")
	for _, v := range []View{ViewDashboard, ViewStudents, ViewProducts, ViewUniforms, ViewOrders, ViewAppointments, ViewShop} {
		assert.NoError(t, Allowed(admin, v), v)
	}

	student := newUser("student")
	assert.NoError(t, Allowed(student, ViewShop))
	assert.NoError(t, Allowed(student, ViewProfile))
	assert.ErrorIs(t, Allowed(student, ViewOrders), ErrForbidden)
	assert.ErrorIs(t, Allowed(student, ViewDashboard), ErrForbidden)
}
