package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tessera/tree"
)

func signupTree(t *testing.T, opts ...tree.Option) *tree.Tree {
	t.Helper()
	return tree.New(map[string]any{
		"signup": map[string]any{
			"email":    "",
			"password": "",
			"accepted": false,
		},
		"status": "idle",
	}, opts...)
}

func TestBind_RequiresBranch(t *testing.T) {
	tr := signupTree(t)

	f, err := Bind(tr, "signup")
	require.NoError(t, err)
	assert.Equal(t, "", f.Get("email"))

	_, err = Bind(tr, "status")
	assert.Error(t, err, "a leaf is not a bindable branch")

	_, err = Bind(tr, "missing")
	assert.Error(t, err)
}

func TestBind_RootPath(t *testing.T) {
	tr := tree.New(map[string]any{"name": "ada"})
	f, err := Bind(tr)
	require.NoError(t, err)

	f.Set("name", "grace")
	assert.Equal(t, "grace", f.Get("name"))
}

func TestForm_SetAndGet(t *testing.T) {
	tr := signupTree(t)
	f, err := Bind(tr, "signup")
	require.NoError(t, err)

	f.Set("email", "ada@example.com")

	assert.Equal(t, "ada@example.com", f.Get("email"))
	assert.Equal(t, "", f.Get("password"), "sibling fields keep their values")
	assert.Nil(t, f.Get("ghost"))
	assert.Equal(t, "idle", tr.Unwrap()["status"], "writes stay inside the bound branch")
}

func TestForm_Values(t *testing.T) {
	f, err := Bind(signupTree(t), "signup")
	require.NoError(t, err)

	f.Set("accepted", true)

	assert.Equal(t, map[string]any{
		"email":    "",
		"password": "",
		"accepted": true,
	}, f.Values())
}

func TestForm_Reset(t *testing.T) {
	f, err := Bind(signupTree(t), "signup")
	require.NoError(t, err)

	f.Set("email", "ada@example.com")
	f.Set("accepted", true)
	f.Reset()

	assert.Equal(t, map[string]any{
		"email":    "",
		"password": "",
		"accepted": false,
	}, f.Values(), "reset restores bind-time values")
}

func TestForm_Watch(t *testing.T) {
	f, err := Bind(signupTree(t), "signup")
	require.NoError(t, err)

	var got []any
	unwatch, err := f.Watch("email", func(old, new any) {
		got = append(got, old, new)
	})
	require.NoError(t, err)

	f.Set("email", "a@b.c")
	assert.Equal(t, []any{"", "a@b.c"}, got)

	unwatch()
	f.Set("email", "x@y.z")
	assert.Len(t, got, 2, "unwatched fields stop notifying")

	_, err = f.Watch("ghost", func(any, any) {})
	assert.Error(t, err)
}

func TestForm_Validate(t *testing.T) {
	f, err := Bind(signupTree(t), "signup")
	require.NoError(t, err)

	f.AddRule("email", Required())
	f.AddRule("password", Required(), MinLength(8))

	problems := f.Validate()
	require.Len(t, problems, 2)
	assert.Equal(t, []string{"email is required"}, problems["email"])
	assert.Equal(t, []string{
		"password is required",
		"password must be at least 8 characters",
	}, problems["password"])

	f.Set("email", "ada@example.com")
	f.Set("password", "correcthorse")

	assert.Empty(t, f.Validate())
}

func TestForm_ValidateNeverMutates(t *testing.T) {
	tr := signupTree(t)
	f, err := Bind(tr, "signup")
	require.NoError(t, err)
	f.AddRule("email", Required())

	before := tr.GetMetrics().Updates
	f.Validate()
	assert.Equal(t, before, tr.GetMetrics().Updates)
}

func TestForm_WritesFlowThroughPipeline(t *testing.T) {
	tr := signupTree(t, tree.WithHistory(10))
	f, err := Bind(tr, "signup")
	require.NoError(t, err)

	f.Set("email", "ada@example.com")
	tr.Undo()

	assert.Equal(t, "", f.Get("email"), "field writes participate in history")
}

func TestRules(t *testing.T) {
	req := Required()
	assert.Error(t, req("f", nil))
	assert.Error(t, req("f", ""))
	assert.NoError(t, req("f", "x"))
	assert.NoError(t, req("f", 0), "zero numbers are present")

	min := MinLength(3)
	assert.Error(t, min("f", "ab"))
	assert.NoError(t, min("f", "abc"))
	assert.NoError(t, min("f", 42), "non-strings pass; pair with Required")
}
