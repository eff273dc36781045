package progress

import "github.com/NamanBalaji/etaprogress/pkg/bar"

func solid(s bar.Style) bar.Filler    { return bar.NewBar(s) }
func doubled(s bar.Style) bar.Filler  { return bar.NewDoubled(s) }
func blank(s bar.Style) bar.Filler    { return bar.NewUndefinedEmpty(s) }
func animated(s bar.Style) bar.Filler { return bar.NewUndefinedAnimated(s) }
