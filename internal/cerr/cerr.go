// Package cerr defines the typed error kinds raised by the environment
// compiler and its collaborators. Every kind wraps an optional cause and
// carries enough context (asset, stage, family) to diagnose a failed
// compile without re-parsing the input.
package cerr

import "fmt"

// Kind identifies one of the seven error categories the compiler can raise.
type Kind string

const (
	KindAssetMalformed   Kind = "asset_malformed"
	KindStageUnknown     Kind = "stage_unknown"
	KindStageBuild       Kind = "stage_build"
	KindCatalogFetch     Kind = "catalog_fetch"
	KindCycleDetected    Kind = "cycle_detected"
	KindEnvMalformed     Kind = "env_malformed"
	KindUnknownAssetType Kind = "unknown_asset_type"
)

// Error is the concrete type behind every error this module raises from a
// known failure kind. Callers should use errors.As to recover it and
// inspect Kind, or errors.Is against a sentinel from SentinelFor below.
type Error struct {
	Kind   Kind
	Asset  string
	Stage  string
	Family string
	Path   []string // CycleDetected only
	Reason string
	Cause  error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Asset != "" {
		msg += fmt.Sprintf(" asset=%s", e.Asset)
	}
	if e.Family != "" {
		msg += fmt.Sprintf(" family=%s", e.Family)
	}
	if e.Stage != "" {
		msg += fmt.Sprintf(" stage=%s", e.Stage)
	}
	if len(e.Path) > 0 {
		msg += fmt.Sprintf(" path=%v", e.Path)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same Kind, so callers can
// write errors.Is(err, cerr.AssetMalformed("", "")) style checks, and also
// satisfies errors.Is(err, SentinelFor(kind)).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func AssetMalformed(asset, reason string) *Error {
	return &Error{Kind: KindAssetMalformed, Asset: asset, Reason: reason}
}

func StageUnknown(asset, stage string) *Error {
	return &Error{Kind: KindStageUnknown, Asset: asset, Stage: stage, Reason: "no builder registered"}
}

func StageBuild(asset, stage string, cause error) *Error {
	return &Error{Kind: KindStageBuild, Asset: asset, Stage: stage, Cause: cause}
}

func CatalogFetch(name string, cause error) *Error {
	return &Error{Kind: KindCatalogFetch, Asset: name, Cause: cause}
}

func CycleDetected(family string, path []string) *Error {
	return &Error{Kind: KindCycleDetected, Family: family, Path: path}
}

func EnvMalformed(reason string) *Error {
	return &Error{Kind: KindEnvMalformed, Reason: reason}
}

func UnknownAssetType(asset string) *Error {
	return &Error{Kind: KindUnknownAssetType, Asset: asset, Reason: "unexhaustive type switch"}
}

// SentinelFor returns a zero-context *Error of the given kind, suitable as
// the target of errors.Is.
func SentinelFor(k Kind) *Error { return &Error{Kind: k} }
