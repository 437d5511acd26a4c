package main

import (
	"embed"
	"fmt"
	"os"

	"github.com/braindrive/chat-plugin/cmd"
	"github.com/braindrive/chat-plugin/internal/config"
	"github.com/braindrive/chat-plugin/internal/i18n"
	"github.com/jeandeaual/go-locale"
)

//go:embed locales/*.json
var localeFS embed.FS

func main() {
	if err := i18n.Init(localeFS, getLocale()); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	cmd.Execute()
}

// getLocale returns the locale based on config
func getLocale() string {
	configLocale := config.GetLocale()

	// If "auto", detect system locale
	if configLocale == "auto" {
		userLocale, err := locale.GetLocale()
		if err != nil || userLocale == "" {
			return "en-US"
		}
		return userLocale
	}

	return configLocale
}
