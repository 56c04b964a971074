// cmd/fx/prompt_fx/module.go
package prompt_fx

import (
	"io"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"itinerary/internal/config"
	"itinerary/pkg/utils"
)

var Module = fx.Provide(
	ProvideTextGenerator)

// ProvideTextGenerator creates the text generation client selected by
// TEXT_PROVIDER, or nil when it is "none".
func ProvideTextGenerator(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (utils.TextGenerator, error) {
	gen, err := utils.NewTextGenerator(cfg.TextProvider, cfg.TextAPIKey(), cfg.TextModel())
	if err != nil {
		return nil, err
	}
	if gen == nil {
		log.Info("text generation disabled")
		return nil, nil
	}

	log.Info("text generation enabled",
		zap.String("provider", cfg.TextProvider), zap.String("model", cfg.TextModel()))
	if c, ok := gen.(io.Closer); ok {
		lc.Append(fx.StopHook(c.Close))
	}
	return gen, nil
}
