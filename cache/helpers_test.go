package cache_test

import (
	"github.com/vippsas/structgrep/langs"
	"github.com/vippsas/structgrep/token"
)

func fakeTok(text string) token.StandardTokenType {
	return token.NewIdentifier(text)
}

func optsWithRanges(ranges bool) langs.Options {
	return langs.Options{Ranges: ranges}
}
