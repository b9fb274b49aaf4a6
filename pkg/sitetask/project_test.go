package sitetask

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitetask/sitetask/internal/testutils/fstest"
	"github.com/sitetask/sitetask/pkg/cfg"
)

func writeExampleProject(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, cfg.ExampleConfig().ToFile(filepath.Join(root, ConfigFile)))

	return root
}

func TestFindProjectInParentDir(t *testing.T) {
	root := writeExampleProject(t)
	subDir := filepath.Join(root, "_posts", "2026")
	require.NoError(t, os.MkdirAll(subDir, 0o755))

	p, err := FindProject(subDir)
	require.NoError(t, err)

	expectedRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	actualRoot, err := filepath.EvalSymlinks(p.Root)
	require.NoError(t, err)

	assert.Equal(t, expectedRoot, actualRoot)
}

func TestFindProjectWithoutConfig(t *testing.T) {
	_, err := FindProject(t.TempDir())
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestProjectResolvesPackageName(t *testing.T) {
	root := writeExampleProject(t)
	fstest.WriteToFile(t, []byte(`{"name": "blog", "version": "1.0.0"}`), filepath.Join(root, "package.json"))

	p, err := ProjectFromFile(filepath.Join(root, ConfigFile))
	require.NoError(t, err)

	banner := p.Cfg.ActionByName("minify").Minify.Banner
	assert.True(t, strings.HasPrefix(banner, "/*! blog "), "unexpected banner: %q", banner)
	assert.Equal(t, root, p.Cfg.ActionByName("jekyll:serve").SiteBuild.Src)
}

func TestProjectPackageNameDefaultsToDirName(t *testing.T) {
	root := filepath.Join(t.TempDir(), "mysite")
	require.NoError(t, os.Mkdir(root, 0o755))

	now := func() time.Time { return time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC) }

	p, err := newProject(root, cfg.ExampleConfig(), now)
	require.NoError(t, err)

	assert.Equal(t, "/*! mysite 07-03-2026 */\n", p.Cfg.ActionByName("minify").Minify.Banner)
}

func TestProjectInvalidPackageFile(t *testing.T) {
	root := writeExampleProject(t)
	fstest.WriteToFile(t, []byte(`{"name":`), filepath.Join(root, "package.json"))

	_, err := ProjectFromFile(filepath.Join(root, ConfigFile))
	require.Error(t, err)
}

func TestProjectRegistryContainsAllTasks(t *testing.T) {
	p, err := DefaultProject(t.TempDir())
	require.NoError(t, err)

	r, err := p.Registry()
	require.NoError(t, err)

	assert.Equal(t,
		[]string{
			"test", "watch_scripts", "watch_css", "watch_html", "compile_css",
			"jekyll_build", "jekyll_serve", "deploy", "default",
		},
		r.Names(),
	)

	pipeline, err := r.Resolve("deploy")
	require.NoError(t, err)
	assert.Equal(t, []string{"shell:jekyll_build", "publish"}, actionNames(pipeline))

	pipeline, err = r.Resolve("default")
	require.NoError(t, err)
	assert.Equal(t, []string{"watch:css", "watch:scripts", "watch:html"}, actionNames(pipeline))
	for _, a := range pipeline {
		assert.Equal(t, KindWatch, a.Kind)
		require.NotNil(t, a.Watch)
	}
}

func TestProjectRegistryUnknownTaskReference(t *testing.T) {
	config := cfg.ExampleConfig()
	config.Tasks = append(config.Tasks, &cfg.Task{Name: "release", Steps: []string{"deploy", "tag"}})

	p, err := newProject(t.TempDir(), config, time.Now)
	require.NoError(t, err)

	_, err = p.Registry()

	var unknownErr *UnknownTaskError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "tag", unknownErr.Name)
	assert.Equal(t, "release", unknownErr.ReferencedBy)
}

func TestProjectRegistryCycle(t *testing.T) {
	config := cfg.ExampleConfig()
	config.Tasks = append(config.Tasks,
		&cfg.Task{Name: "ping", Steps: []string{"pong"}},
		&cfg.Task{Name: "pong", Steps: []string{"lint", "ping"}},
	)

	p, err := newProject(t.TempDir(), config, time.Now)
	require.NoError(t, err)

	_, err = p.Registry()

	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, []string{"pong", "ping", "pong"}, cycleErr.Path)
}

func TestProjectRegistryWatchTaskMustNotWatch(t *testing.T) {
	config := cfg.ExampleConfig()
	config.WatchByName("html").Task = "default"

	p, err := newProject(t.TempDir(), config, time.Now)
	require.NoError(t, err)

	_, err = p.Registry()

	var watchErr *WatchCycleError
	require.ErrorAs(t, err, &watchErr)
	assert.Equal(t, "html", watchErr.Binding)
	assert.Equal(t, "default", watchErr.Task)
	assert.Equal(t, "watch:css", watchErr.WatchAction)
}

func TestProjectRegistryUnusedWatchBindingIsValidated(t *testing.T) {
	config := cfg.ExampleConfig()
	config.Tasks = append(config.Tasks, &cfg.Task{Name: "serve_and_watch", Steps: []string{"jekyll_build", "default"}})
	config.Watches = append(config.Watches, &cfg.WatchBinding{
		Name:  "posts",
		Files: []string{"_posts/**"},
		Task:  "serve_and_watch",
	})

	p, err := newProject(t.TempDir(), config, time.Now)
	require.NoError(t, err)

	_, err = p.Registry()

	var watchErr *WatchCycleError
	require.ErrorAs(t, err, &watchErr)
	assert.Equal(t, "posts", watchErr.Binding)
}

func newTestExecutor(t *testing.T, p *Project, runner ProcessRunner) *Executor {
	t.Helper()

	r, err := p.Registry()
	require.NoError(t, err)

	newUploader := func(context.Context) (Uploader, error) {
		return &fakeUploader{}, nil
	}

	return NewExecutor(r, p.Plugins(runner, newUploader, t.Logf))
}

func TestFailingLintFailsTestTask(t *testing.T) {
	root := t.TempDir()
	fstest.WriteToFile(t, []byte("var a = 1\n"), filepath.Join(root, "js", "main.js"))

	p, err := DefaultProject(root)
	require.NoError(t, err)

	runner := fakeRunner{onExec: func(p *Process) error {
		return &ExternalToolError{Command: p.String(), ExitCode: 2}
	}}

	err = newTestExecutor(t, p, &runner).Run(context.Background(), "test")

	var pipelineErr *PipelineError
	require.ErrorAs(t, err, &pipelineErr)
	assert.Equal(t, "test", pipelineErr.TaskName)
	assert.Equal(t, "lint", pipelineErr.FailedAction)

	var toolErr *ExternalToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, 2, toolErr.ExitCode)
}

func TestWatchScriptsStopsWhenConcatFails(t *testing.T) {
	root := t.TempDir()
	dest := filepath.Join(root, "js", "main.min.js")
	fstest.WriteToFile(t, []byte("unchanged"), dest)
	// only js/main.js exists, the vendor sources are missing
	fstest.WriteToFile(t, []byte("var a;"), filepath.Join(root, "js", "main.js"))

	p, err := DefaultProject(root)
	require.NoError(t, err)

	runner := fakeRunner{}

	err = newTestExecutor(t, p, &runner).Run(context.Background(), "watch_scripts")

	var pipelineErr *PipelineError
	require.ErrorAs(t, err, &pipelineErr)
	assert.Equal(t, "concat", pipelineErr.FailedAction)

	assert.Empty(t, runner.Processes(), "minify and site build must not run")
	assert.Equal(t, "unchanged", fstest.ReadFile(t, dest))
}

func TestWatchScriptsRunsAllActions(t *testing.T) {
	root := t.TempDir()

	config := cfg.ExampleConfig()
	config.ActionByName("concat").Concat.Src = []string{"js/vendor.js", "js/main.js"}
	fstest.WriteToFile(t, []byte("var v;"), filepath.Join(root, "js", "vendor.js"))
	fstest.WriteToFile(t, []byte("var m;"), filepath.Join(root, "js", "main.js"))

	p, err := newProject(root, config, time.Now)
	require.NoError(t, err)

	runner := fakeRunner{}
	require.NoError(t, newTestExecutor(t, p, &runner).Run(context.Background(), "watch_scripts"))

	assert.Contains(t, fstest.ReadFile(t, filepath.Join(root, "js", "main.min.js")), "var v;\nvar m;")

	procs := runner.Processes()
	require.Len(t, procs, 2)
	assert.Equal(t, "uglifyjs", procs[0].Name)
	assert.Equal(t, ShellProcess("jekyll build").Args, procs[1].Args)
}
