package ai

import "context"

// offlineReply proposes no update, leaving the deterministic extractor in charge.
const offlineReply = `{"updated_slots": {}, "done": false}`

// OfflineProvider answers without any network call. Used for local runs and demos.
type OfflineProvider struct{}

func NewOfflineProvider() *OfflineProvider { return &OfflineProvider{} }

func (OfflineProvider) Name() string { return ProviderOffline }

func (OfflineProvider) Generate(ctx context.Context, _ string, _ GenerateOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return offlineReply, nil
}
