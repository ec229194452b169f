package supabase

import "github.com/pkg/errors"

var (
	// ErrClientNotConfigured means no Supabase URL or anon key is set.
	ErrClientNotConfigured = errors.New("supabase client not configured")

	// ErrConnectionFailed means the PostgREST endpoint did not answer a probe.
	ErrConnectionFailed = errors.New("supabase connection test failed")
)
