package sign

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smallbiznis/facturae/internal/config"
	"github.com/smallbiznis/facturae/internal/facturae/domain"
)

// writeStub creates an executable standing in for the Java signer. The
// signer invokes it as <bin> -Djava.awt.headless=true <class> 0 <in> <out>
// <profile> <cert> <password>, so the stub sees the input as $4 and the
// output as $5.
func writeStub(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "signer-stub.sh")
	content := "#!/bin/sh\n" + script + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o755))
	return path
}

func newSigner(t *testing.T, bin string) *JavaSigner {
	t.Helper()
	return New(config.SignerConfig{
		JavaBin: bin,
		Class:   "facturae.tools.Signer",
		LibDir:  t.TempDir(),
		WorkDir: t.TempDir(),
	}, zap.NewNop())
}

func tempArtifacts(t *testing.T) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(os.TempDir(), "facturae-*"))
	require.NoError(t, err)
	return matches
}

func TestSignSuccess(t *testing.T) {
	signer := newSigner(t, writeStub(t, `cp "$4" "$5"`))
	before := tempArtifacts(t)

	signed, err := signer.Sign(context.Background(), []byte("<doc/>"), []byte("cert"), "secret")
	require.NoError(t, err)
	assert.Equal(t, []byte("<doc/>"), signed)
	assert.Equal(t, before, tempArtifacts(t))
}

func TestSignFailure(t *testing.T) {
	signer := newSigner(t, writeStub(t, `echo "bad password" >&2; exit 3`))
	before := tempArtifacts(t)

	_, err := signer.Sign(context.Background(), []byte("<doc/>"), []byte("cert"), "secret")
	require.Error(t, err)

	serr, ok := err.(*domain.SigningError)
	require.True(t, ok, "expected SigningError, got %T", err)
	assert.Contains(t, serr.Output, "bad password")
	assert.NotContains(t, serr.Error(), "secret")
	assert.Equal(t, before, tempArtifacts(t))
}

func TestSignPassesPasswordAsLastArgument(t *testing.T) {
	signer := newSigner(t, writeStub(t, `[ "$8" = "s3cret" ] || exit 1; cp "$4" "$5"`))

	_, err := signer.Sign(context.Background(), []byte("<doc/>"), []byte("cert"), "s3cret")
	assert.NoError(t, err)
}

func TestSignWritesCertificate(t *testing.T) {
	signer := newSigner(t, writeStub(t, `cmp -s "$7" /dev/stdin <<EOF || exit 1
cert-bytes
EOF
cp "$4" "$5"`))

	_, err := signer.Sign(context.Background(), []byte("<doc/>"), []byte("cert-bytes\n"), "pw")
	assert.NoError(t, err)
}

func TestSignMissingBinary(t *testing.T) {
	signer := newSigner(t, filepath.Join(t.TempDir(), "does-not-exist"))
	before := tempArtifacts(t)

	_, err := signer.Sign(context.Background(), []byte("<doc/>"), []byte("cert"), "pw")
	require.Error(t, err)
	assert.Equal(t, before, tempArtifacts(t))
}
