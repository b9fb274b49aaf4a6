package sitetask

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shellAction(name string) *Action {
	return &Action{Name: name, Kind: KindShell}
}

func actionNames(actions []*Action) []string {
	result := make([]string, 0, len(actions))
	for _, a := range actions {
		result = append(result, a.Name)
	}

	return result
}

func TestRegisterDuplicateFails(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("build", ActionStep(shellAction("a"))))

	err := r.Register("build", ActionStep(shellAction("b")))
	var dupErr *DuplicateTaskError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "build", dupErr.Name)

	pipeline, err := r.Resolve("build")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, actionNames(pipeline))
}

func TestRegisterSelfReferenceFails(t *testing.T) {
	r := NewRegistry()

	err := r.Register("loop", ActionStep(shellAction("a")), TaskStep("loop"))
	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, []string{"loop", "loop"}, cycleErr.Path)

	_, err = r.Task("loop")
	require.Error(t, err, "task closing a cycle must not be registered")
}

func TestRegisterTransitiveCycleFails(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("a", TaskStep("b")))
	require.NoError(t, r.Register("b", TaskStep("c")))

	err := r.Register("c", ActionStep(shellAction("x")), TaskStep("a"))
	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, []string{"c", "a", "b", "c"}, cycleErr.Path)
}

func TestRegisterAllowsSharedSubtasks(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("build", ActionStep(shellAction("jekyll"))))
	require.NoError(t, r.Register("css", ActionStep(shellAction("compass")), TaskStep("build")))
	require.NoError(t, r.Register("all", TaskStep("css"), TaskStep("build")))

	pipeline, err := r.Resolve("all")
	require.NoError(t, err)
	assert.Equal(t, []string{"compass", "jekyll", "jekyll"}, actionNames(pipeline))
}

func TestResolveExpandsInPlace(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("outer",
		ActionStep(shellAction("a")),
		TaskStep("inner"),
		ActionStep(shellAction("d")),
	))
	require.NoError(t, r.Register("inner",
		ActionStep(shellAction("b")),
		TaskStep("innermost"),
	))
	require.NoError(t, r.Register("innermost", ActionStep(shellAction("c"))))

	pipeline, err := r.Resolve("outer")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, actionNames(pipeline))
}

func TestResolveEmptyTask(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("empty"))

	pipeline, err := r.Resolve("empty")
	require.NoError(t, err)
	assert.Empty(t, pipeline)
}

func TestResolveUnknownTask(t *testing.T) {
	r := NewRegistry()

	_, err := r.Resolve("missing")
	var unknownErr *UnknownTaskError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "missing", unknownErr.Name)
	assert.Empty(t, unknownErr.ReferencedBy)
}

func TestResolveUnknownReference(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("deploy", TaskStep("build")))

	_, err := r.Resolve("deploy")
	var unknownErr *UnknownTaskError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "build", unknownErr.Name)
	assert.Equal(t, "deploy", unknownErr.ReferencedBy)

	require.Error(t, r.Validate())
}

func TestNamesAreInRegistrationOrder(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("z"))
	require.NoError(t, r.Register("a"))
	require.NoError(t, r.Register("m"))

	assert.Equal(t, []string{"z", "a", "m"}, r.Names())
}

func TestValidateRejectsActionsAfterWatch(t *testing.T) {
	r := NewRegistry()

	watchAction := &Action{Name: "watch:css", Kind: KindWatch}

	require.NoError(t, r.Register("watching", ActionStep(watchAction)))
	require.NoError(t, r.Register("invalid", TaskStep("watching"), ActionStep(shellAction("a"))))

	require.Error(t, r.Validate())
}
