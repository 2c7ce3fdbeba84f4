package vs

import (
	"github.com/cockroachdb/errors"

	"github.com/qobs-build/vsgen/internal/msg"
)

var (
	ErrUnknownGenerator         = errors.New("unknown generator")
	ErrInstanceNotFound         = errors.New("Visual Studio instance not found")
	ErrNoInstanceInstalled      = errors.New("no Visual Studio instance installed")
	ErrPlatformUnsupported      = errors.New("platform not supported")
	ErrPlatformConflict         = errors.New("platform conflicts with generator name")
	ErrToolsetRequired          = errors.New("toolset required")
	ErrInvalidToolset           = errors.New("invalid toolset specification")
	ErrToolsetVersionNotFound   = errors.New("toolset version not found")
	ErrSystemMismatch           = errors.New("system conflicts with generator platform")
	ErrSystemUnsupported        = errors.New("system not supported")
	ErrWorkflowNotInstalled     = errors.New("Android workflow not installed")
	ErrWindows10SDKNotFound     = errors.New("Windows 10 SDK not found")
	ErrStoreToolsetNotInstalled = errors.New("Windows Store toolset not installed")

	// Android prober failures.
	ErrNoVSInstance          = errors.New("VisualStudio not installed")
	ErrAndroidNotInstalled   = errors.New("Android application type not installed")
	ErrPlatformNotConfigured = errors.New("platform not set")
	ErrNoAndroidWorkflow     = errors.New("no Android workflow found")
	ErrNoClangToolchain      = errors.New("no clang toolchain found")
)

// fatal reports text through the issuer and returns it as an error marked
// with sentinel.
func fatal(issuer msg.Issuer, sentinel error, text string) error {
	issuer.Issue(msg.SeverityFatal, text)
	return errors.Mark(errors.New(text), sentinel)
}

// soft returns a marked error without reporting it. Callers may recover.
func soft(sentinel error, format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), sentinel)
}
