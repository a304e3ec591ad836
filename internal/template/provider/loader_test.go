package provider

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacogips/tpy/internal/template/model"
	"github.com/tacogips/tpy/internal/template/store"
)

// fakeProvider serves an in-memory tree. Directory URLs map to their
// children and file URLs to their contents.
type fakeProvider struct {
	dirs  map[string][]RemoteNode
	files map[string]string
	fail  map[string]error
	reads int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) ListChildren(_ context.Context, url string) ([]RemoteNode, error) {
	if err := f.fail[url]; err != nil {
		return nil, err
	}
	nodes, ok := f.dirs[url]
	if !ok {
		return nil, NewNotFoundError("fake", url)
	}
	return nodes, nil
}

func (f *fakeProvider) ReadFile(_ context.Context, node RemoteNode) ([]byte, error) {
	if err := f.fail[node.URL]; err != nil {
		return nil, err
	}
	f.reads++
	content, ok := f.files[node.URL]
	if !ok {
		return nil, NewNotFoundError("fake", node.URL)
	}
	return []byte(content), nil
}

const remoteRoot = "https://github.com/o/r/tree/main/templates"

func dirNode(name, url string) RemoteNode {
	return RemoteNode{Name: name, Kind: NodeDirectory, URL: url}
}

func fileNode(name, url string) RemoteNode {
	return RemoteNode{Name: name, Kind: NodeFile, URL: url}
}

// newFakeRemote builds a collection with a "component" template holding a
// descriptor, a README and a nested source file.
func newFakeRemote() *fakeProvider {
	comp := remoteRoot + "/component"
	return &fakeProvider{
		dirs: map[string][]RemoteNode{
			remoteRoot: {
				dirNode("component", comp),
				fileNode("README.md", remoteRoot+"/README.md"),
				dirNode("service", remoteRoot+"/service"),
			},
			comp: {
				fileNode(".templify", comp+"/.templify"),
				fileNode("README.md", comp+"/README.md"),
				dirNode("$$name$$", comp+"/$$name$$"),
			},
			comp + "/$$name$$": {
				fileNode("$$name$$.tsx", comp+"/$$name$$/$$name$$.tsx"),
			},
			remoteRoot + "/service": {
				fileNode("main.go", remoteRoot+"/service/main.go"),
			},
		},
		files: map[string]string{
			comp + "/.templify":             "description: A component\npath: src/$$name$$\n",
			comp + "/README.md":             "remote readme\n",
			comp + "/$$name$$/$$name$$.tsx": "export const $$name.pascal$$ = 1\n",
			remoteRoot + "/README.md":       "collection readme\n",
			remoteRoot + "/service/main.go": "package main\n",
		},
		fail: map[string]error{},
	}
}

func newTestLoader(t *testing.T, fake *fakeProvider) *Loader {
	t.Helper()
	s := store.New(filepath.Join(t.TempDir(), ".templates"))
	require.NoError(t, s.Init())
	return &Loader{
		Store: s,
		NewProvider: func(url string) (Provider, error) {
			if _, err := Classify(url); err != nil {
				return nil, err
			}
			return fake, nil
		},
	}
}

// snapshot returns every file below root keyed by relative path.
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		if d.IsDir() {
			out[rel+"/"] = ""
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out[rel] = string(data)
		return nil
	})
	require.NoError(t, err)
	return out
}

func TestLoader_LoadTemplate(t *testing.T) {
	fake := newFakeRemote()
	l := newTestLoader(t, fake)
	dir := l.Store.Dir("component")

	res, err := l.LoadTemplate(context.Background(), dir, remoteRoot+"/component", false)
	require.NoError(t, err)
	assert.Equal(t, "component", res.Name)
	assert.Equal(t, 3, res.Files)
	assert.Equal(t, 1, res.Dirs)
	assert.True(t, res.SourceRecorded)

	data, err := os.ReadFile(filepath.Join(dir, "$$name$$", "$$name$$.tsx"))
	require.NoError(t, err)
	assert.Equal(t, "export const $$name.pascal$$ = 1\n", string(data))

	meta := model.ParseMeta(l.Store.Root(), "component")
	assert.Equal(t, remoteRoot+"/component", meta.Source)
	assert.Equal(t, "A component", meta.Description)
	assert.Equal(t, "src/$$name$$", meta.Path)
}

func TestLoader_LoadTemplateIsIdempotentWithoutForce(t *testing.T) {
	fake := newFakeRemote()
	l := newTestLoader(t, fake)
	dir := l.Store.Dir("component")
	ctx := context.Background()

	_, err := l.LoadTemplate(ctx, dir, remoteRoot+"/component", false)
	require.NoError(t, err)
	before := snapshot(t, l.Store.Root())
	reads := fake.reads

	_, err = l.LoadTemplate(ctx, dir, remoteRoot+"/component", false)
	requireProviderError(t, err, ProviderAlreadyExists)
	assert.Equal(t, before, snapshot(t, l.Store.Root()))
	assert.Equal(t, reads, fake.reads)
}

func TestLoader_LoadTemplateForceOverwrites(t *testing.T) {
	fake := newFakeRemote()
	l := newTestLoader(t, fake)
	dir := l.Store.Dir("component")
	ctx := context.Background()

	_, err := l.LoadTemplate(ctx, dir, remoteRoot+"/component", false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("local edit\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "local.txt"), []byte("keep\n"), 0644))

	res, err := l.LoadTemplate(ctx, dir, remoteRoot+"/component", true)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "remote readme\n", string(data))
	assert.FileExists(t, filepath.Join(dir, "local.txt"))

	// The remote descriptor replaced the local one, so the source is recorded again.
	assert.True(t, res.SourceRecorded)
	descriptor, err := os.ReadFile(filepath.Join(dir, ".templify"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(descriptor), model.KeySource))
}

func TestLoader_LoadTemplateCleansUpOnFailure(t *testing.T) {
	fake := newFakeRemote()
	fake.fail[remoteRoot+"/component/$$name$$/$$name$$.tsx"] = NewAuthError("fake", "x")
	l := newTestLoader(t, fake)
	dir := l.Store.Dir("component")

	_, err := l.LoadTemplate(context.Background(), dir, remoteRoot+"/component", false)
	requireProviderError(t, err, ProviderAuthFailed)
	assert.NoDirExists(t, dir)
}

func TestLoader_LoadTemplateUnsupportedTouchesNothing(t *testing.T) {
	l := newTestLoader(t, newFakeRemote())
	dir := l.Store.Dir("x")

	_, err := l.LoadTemplate(context.Background(), dir, "https://example.com/x", false)
	requireProviderError(t, err, ProviderUnsupported)
	assert.NoDirExists(t, dir)
}

func TestLoader_LoadTemplateRejectsUnsafeNames(t *testing.T) {
	fake := newFakeRemote()
	fake.dirs[remoteRoot+"/evil"] = []RemoteNode{fileNode("..", remoteRoot+"/evil/..")}
	l := newTestLoader(t, fake)

	_, err := l.LoadTemplate(context.Background(), l.Store.Dir("evil"), remoteRoot+"/evil", false)
	requireProviderError(t, err, ProviderDecodeFailed)
	assert.NoDirExists(t, l.Store.Dir("evil"))
}

func TestLoader_LoadCollection(t *testing.T) {
	l := newTestLoader(t, newFakeRemote())

	results, err := l.LoadCollection(context.Background(), l.Store.Root(), remoteRoot, false)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "component", results[0].Name)
	assert.Equal(t, "service", results[1].Name)

	names, err := l.Store.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"component", "service"}, names)
	assert.NoFileExists(t, filepath.Join(l.Store.Root(), "README.md"))

	// A template without a descriptor gets one holding just the source.
	meta := model.ParseMeta(l.Store.Root(), "service")
	assert.Equal(t, remoteRoot+"/service", meta.Source)
	assert.FileExists(t, filepath.Join(l.Store.Dir("service"), model.DescriptorYAMLFile))
}

func TestLoader_Reload(t *testing.T) {
	fake := newFakeRemote()
	l := newTestLoader(t, fake)
	ctx := context.Background()
	_, err := l.LoadCollection(ctx, l.Store.Root(), remoteRoot, false)
	require.NoError(t, err)

	fake.files[remoteRoot+"/component/README.md"] = "updated readme\n"
	require.NoError(t, os.WriteFile(filepath.Join(l.Store.Dir("component"), "stale.txt"), []byte("x"), 0644))

	res, err := l.Reload(ctx, "comp", false, true)
	require.NoError(t, err)
	assert.Equal(t, "component", res.Name)

	data, err := os.ReadFile(filepath.Join(l.Store.Dir("component"), "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "updated readme\n", string(data))
	assert.NoFileExists(t, filepath.Join(l.Store.Dir("component"), "stale.txt"))
	assert.NoDirExists(t, l.Store.Dir("component")+model.BackupSuffix)
	assert.Equal(t, remoteRoot+"/component", model.ParseMeta(l.Store.Root(), "component").Source)
}

func TestLoader_ReloadRollsBackOnFailure(t *testing.T) {
	fake := newFakeRemote()
	l := newTestLoader(t, fake)
	ctx := context.Background()
	_, err := l.LoadCollection(ctx, l.Store.Root(), remoteRoot, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(l.Store.Dir("component"), "notes.txt"), []byte("mine\n"), 0644))
	before := snapshot(t, l.Store.Root())

	fake.fail[remoteRoot+"/component/$$name$$/$$name$$.tsx"] = NewFetchError("fake", "x", nil)
	_, err = l.Reload(ctx, "component", true, true)
	requireProviderError(t, err, ProviderFetchFailed)

	assert.Equal(t, before, snapshot(t, l.Store.Root()))
	assert.NoDirExists(t, l.Store.Dir("component")+model.BackupSuffix)
}

func TestLoader_ReloadWithoutSource(t *testing.T) {
	l := newTestLoader(t, newFakeRemote())
	_, err := l.Store.Create("handmade")
	require.NoError(t, err)

	_, err = l.Reload(context.Background(), "handmade", true, true)
	requireProviderError(t, err, ProviderNoProvenance)
	assert.DirExists(t, l.Store.Dir("handmade"))
}

func TestLoader_ReloadAll(t *testing.T) {
	fake := newFakeRemote()
	l := newTestLoader(t, fake)
	ctx := context.Background()
	_, err := l.LoadCollection(ctx, l.Store.Root(), remoteRoot, false)
	require.NoError(t, err)
	_, err = l.Store.Create("handmade")
	require.NoError(t, err)

	results, err := l.ReloadAll(ctx, false)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "component", results[0].Name)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, "handmade", results[1].Name)
	requireProviderError(t, results[1].Err, ProviderNoProvenance)
	assert.Equal(t, "service", results[2].Name)
	assert.NoError(t, results[2].Err)
}
