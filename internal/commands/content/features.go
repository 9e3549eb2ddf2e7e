package contentcmd

// FeatureGates exposes runtime feature toggles required by content command handlers.
// Callers can supply closures that read from posts.Config to keep the handlers
// decoupled from configuration packages while still honouring feature flags.
type FeatureGates struct {
	// FeedsEnabled should return true when feed artifacts should be generated.
	FeedsEnabled func() bool
}

func (g FeatureGates) feedsEnabled() bool {
	if g.FeedsEnabled == nil {
		return true
	}
	return g.FeedsEnabled()
}
