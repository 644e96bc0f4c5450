package shell

import (
	"context"
	"errors"
	"testing"

	"github.com/smoothjs/smooth-cli/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectPackageManager(t *testing.T) {
	testutil.Quiet(t)

	withYarn := &testutil.FakeRunner{}
	assert.Equal(t, "yarn", DetectPackageManager(context.Background(), withYarn))
	require.Len(t, withYarn.Calls, 1)
	assert.Equal(t, "yarn --version", withYarn.Calls[0].String())

	withoutYarn := &testutil.FakeRunner{Fail: map[string]error{"yarn": errors.New("not found")}}
	assert.Equal(t, "npm", DetectPackageManager(context.Background(), withoutYarn))
}

func TestInstall(t *testing.T) {
	testutil.Quiet(t)

	ok := &testutil.FakeRunner{}
	assert.True(t, Install(context.Background(), ok, "npm", "my-app"))
	require.Len(t, ok.Calls, 1)
	assert.Equal(t, "my-app", ok.Calls[0].Dir)
	assert.Equal(t, "npm install", ok.Calls[0].String())

	failing := &testutil.FakeRunner{Fail: map[string]error{"npm install": errors.New("exit status 1")}}
	assert.False(t, Install(context.Background(), failing, "npm", "my-app"))
}

func TestExecRunnerReportsFailure(t *testing.T) {
	testutil.Quiet(t)

	err := ExecRunner{}.Run(context.Background(), "", "smooth-cli-no-such-binary")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "smooth-cli-no-such-binary")
}
