// Package providers registers every built-in generator provider.
package providers

import (
	"sync"

	"porttariff/internal/config"
	"porttariff/internal/generator"
	"porttariff/internal/generator/claude"
	"porttariff/internal/generator/gemini"
	"porttariff/internal/generator/genaisdk"
	"porttariff/internal/generator/openai"
	"porttariff/internal/port"
)

var once sync.Once

// Register makes "gemini", "genai", "claude" and "openai" available to generator.New.
func Register() {
	once.Do(func() {
		generator.RegisterProvider("gemini", func(cfg *config.ProviderConfig) (port.Generator, error) {
			return gemini.NewGenerator(cfg), nil
		})
		generator.RegisterProvider("genai", func(cfg *config.ProviderConfig) (port.Generator, error) {
			return genaisdk.NewGenerator(cfg)
		})
		generator.RegisterProvider("claude", func(cfg *config.ProviderConfig) (port.Generator, error) {
			return claude.NewGenerator(cfg), nil
		})
		generator.RegisterProvider("openai", func(cfg *config.ProviderConfig) (port.Generator, error) {
			return openai.NewGenerator(cfg), nil
		})
	})
}
