package loader

import (
	"context"

	"github.com/nikogura/resume-versions/pkg/document"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ErrNoSources is returned when neither the separated documents nor a legacy
// document are configured.
var ErrNoSources = errors.New("no document locations configured")

// Sources names where the documents live.  Each location is a file path or an
// http(s) URL.
type Sources struct {
	Profile  string `json:"profile"`
	Versions string `json:"versions"`
	Legacy   string `json:"legacy"`
}

// Documents is the outcome of a load.  When Legacy is set, Profile and
// Versions both hold the single combined document.
type Documents struct {
	Profile  document.Raw
	Versions document.Raw
	Legacy   bool
	// FallbackReason is why the separated documents were not used.
	FallbackReason error
}

// Load fetches the profile and version-set documents concurrently.  If either
// fetch fails, or they are not configured, the legacy document is fetched once
// instead.
func Load(ctx context.Context, sources Sources) (docs Documents, err error) {
	var modernErr error
	if sources.Profile != "" && sources.Versions != "" {
		docs, modernErr = loadSeparated(ctx, sources)
		if modernErr == nil {
			return docs, err
		}
	} else {
		modernErr = ErrNoSources
	}

	if sources.Legacy == "" {
		err = modernErr
		return docs, err
	}

	legacy, err := Fetch(ctx, sources.Legacy)
	if err != nil {
		err = errors.Wrapf(err, "legacy fallback failed (separated documents: %v)", modernErr)
		return docs, err
	}

	docs = Documents{
		Profile:        legacy,
		Versions:       legacy,
		Legacy:         true,
		FallbackReason: modernErr,
	}
	return docs, err
}

func loadSeparated(ctx context.Context, sources Sources) (docs Documents, err error) {
	g, gctx := errgroup.WithContext(ctx)

	var profileDoc, versionsDoc document.Raw

	g.Go(func() (err error) {
		profileDoc, err = Fetch(gctx, sources.Profile)
		return err
	})

	g.Go(func() (err error) {
		versionsDoc, err = Fetch(gctx, sources.Versions)
		return err
	})

	err = g.Wait()
	if err != nil {
		return docs, err
	}

	docs = Documents{
		Profile:  profileDoc,
		Versions: versionsDoc,
	}
	return docs, err
}
