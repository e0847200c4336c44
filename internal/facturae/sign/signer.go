// Package sign produces signed Facturae documents through the external Java
// signing tool.
package sign

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/smallbiznis/facturae/internal/config"
	"github.com/smallbiznis/facturae/internal/facturae/domain"
)

const signatureProfile = "facturae31"

// JavaSigner shells out to the signing tool with the document, certificate
// and password. Temporary files are exclusively owned by one signing run and
// removed on every exit path; the password is passed as a process argument
// and never logged.
type JavaSigner struct {
	cfg config.SignerConfig
	log *zap.Logger
}

func New(cfg config.SignerConfig, log *zap.Logger) *JavaSigner {
	return &JavaSigner{cfg: cfg, log: log.Named("facturae.sign")}
}

func (s *JavaSigner) Sign(ctx context.Context, document, certificate []byte, password string) ([]byte, error) {
	unsignedPath, err := writeTemp("facturae-*.xml", document)
	if err != nil {
		return nil, err
	}
	defer os.Remove(unsignedPath)

	certPath, err := writeTemp("facturae-*.pfx", certificate)
	if err != nil {
		return nil, err
	}
	defer os.Remove(certPath)

	signedFile, err := os.CreateTemp("", "facturae-*.xsig")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	signedPath := signedFile.Name()
	signedFile.Close()
	defer os.Remove(signedPath)

	args := []string{
		"-Djava.awt.headless=true",
		s.cfg.Class,
		"0",
		unsignedPath,
		signedPath,
		signatureProfile,
		certPath,
		password,
	}
	cmd := exec.CommandContext(ctx, s.cfg.JavaBin, args...)
	cmd.Env = append(os.Environ(), "CLASSPATH="+s.classpath())
	if s.cfg.WorkDir != "" {
		cmd.Dir = s.cfg.WorkDir
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		s.log.Warn("signing process failed",
			zap.Strings("command", append([]string{s.cfg.JavaBin}, args[:len(args)-1]...)),
			zap.Error(err),
			zap.ByteString("output", output))
		return nil, &domain.SigningError{Output: strings.TrimSpace(string(output)), Cause: err}
	}

	signed, err := os.ReadFile(signedPath)
	if err != nil {
		return nil, fmt.Errorf("read signed document: %w", err)
	}
	return signed, nil
}

func (s *JavaSigner) classpath() string {
	jars, err := filepath.Glob(filepath.Join(s.cfg.LibDir, "*.jar"))
	if err != nil || len(jars) == 0 {
		return ""
	}
	return strings.Join(jars, string(os.PathListSeparator))
}

func writeTemp(pattern string, content []byte) (string, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return path, nil
}

var _ domain.Signer = (*JavaSigner)(nil)
