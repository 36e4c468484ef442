package server

import (
	"github.com/nfrund/tradeskills/internal/module"
	"github.com/nfrund/tradeskills/internal/modules/course"
	"github.com/nfrund/tradeskills/internal/storage"
)

// appModules is the list of application modules, in boot order. They shut
// down in reverse.
func appModules(source storage.Source) []module.Module {
	return []module.Module{
		course.New(course.Dependencies{Source: source}),
	}
}
