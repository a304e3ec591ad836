package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, templates ...string) *Store {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), ".templates"))
	require.NoError(t, s.Init())
	for _, name := range templates {
		require.NoError(t, os.MkdirAll(s.Dir(name), 0755))
	}
	return s
}

func requireStoreError(t *testing.T, err error, typ StoreErrorType) *StoreError {
	t.Helper()
	var serr *StoreError
	require.True(t, errors.As(err, &serr), "expected StoreError, got %v", err)
	assert.Equal(t, typ, serr.Type)
	return serr
}

func TestInit(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), ".templates"))
	assert.False(t, s.Initialized())
	requireStoreError(t, s.EnsureInitialized(), StoreNotInitialized)

	_, err := s.Names()
	requireStoreError(t, err, StoreNotInitialized)

	require.NoError(t, s.Init())
	assert.True(t, s.Initialized())
	requireStoreError(t, s.Init(), StoreAlreadyExists)
}

func TestNamesSkipsFilesAndBackups(t *testing.T) {
	s := newStore(t, "Component", "api", "Component---backup")
	require.NoError(t, os.WriteFile(filepath.Join(s.Root(), "README.md"), []byte("x"), 0644))

	names, err := s.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"Component", "api"}, names)
}

func TestResolve(t *testing.T) {
	s := newStore(t, "Component", "ComponentTest", "Service", "Setup")

	tests := []struct {
		name    string
		input   string
		strict  bool
		want    string
		errType StoreErrorType
		wantErr bool
	}{
		{name: "exact", input: "Component", want: "Component"},
		{name: "exact case-insensitive", input: "component", want: "Component"},
		{name: "exact wins over prefix", input: "COMPONENT", strict: false, want: "Component"},
		{name: "unique prefix", input: "serv", want: "Service"},
		{name: "ambiguous prefix", input: "s", wantErr: true, errType: StoreAmbiguous},
		{name: "prefix rejected when strict", input: "serv", strict: true, wantErr: true, errType: StoreNotFound},
		{name: "exact when strict", input: "setup", strict: true, want: "Setup"},
		{name: "not found", input: "nothing", wantErr: true, errType: StoreNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Resolve(tt.input, tt.strict)
			if tt.wantErr {
				serr := requireStoreError(t, err, tt.errType)
				assert.Equal(t, tt.input, serr.Name)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveAmbiguousListsCandidates(t *testing.T) {
	s := newStore(t, "api-rest", "api-grpc")

	_, err := s.Resolve("API", false)
	serr := requireStoreError(t, err, StoreAmbiguous)
	assert.Equal(t, []string{"api-grpc", "api-rest"}, serr.Candidates)
	assert.Contains(t, err.Error(), "api-grpc, api-rest")
}

func TestCreate(t *testing.T) {
	s := newStore(t)

	dir, err := s.Create("Widget")
	require.NoError(t, err)
	assert.DirExists(t, dir)

	_, err = s.Create("Widget")
	requireStoreError(t, err, StoreAlreadyExists)

	for _, bad := range []string{"", "a/b", "..", `a\b`} {
		_, err = s.Create(bad)
		requireStoreError(t, err, StoreInvalidName)
	}
}

func TestList(t *testing.T) {
	s := newStore(t, "B", "A")
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir("A"), ".templify"), []byte("description: first\n"), 0644))

	metas, err := s.List()
	require.NoError(t, err)
	require.Len(t, metas, 2)
	assert.Equal(t, "A", metas[0].Name)
	assert.Equal(t, "first", metas[0].Description)
	assert.Equal(t, "B", metas[1].Name)
	assert.Equal(t, ".", metas[1].Path)
}
