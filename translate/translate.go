// Package translate formats user visible messages for the host locale.
package translate

//go:generate go tool gotext -srclang=en-US update -out=catalog.go -lang=en-US github.com/ezrec/accvm/cpu github.com/ezrec/accvm/emulator github.com/ezrec/accvm/executable github.com/ezrec/accvm/io

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

const DEFAULT_LOCALE = "en-US" // Used when the host reports no locale.

var (
	mutex   sync.RWMutex
	printer *message.Printer
)

func init() {
	SetLocales(Locales()...)
}

// Locales returns the host's preferred locales, most preferred first.
func Locales() (locales []string) {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("accvm: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{DEFAULT_LOCALE}
	}

	return
}

// SetLocales selects the message language from a preference list.
func SetLocales(locales ...string) {
	if len(locales) == 0 {
		locales = []string{DEFAULT_LOCALE}
	}

	mutex.Lock()
	defer mutex.Unlock()
	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	mutex.RLock()
	defer mutex.RUnlock()
	return printer.Sprintf(key, args...)
}
