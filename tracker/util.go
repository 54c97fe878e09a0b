package tracker

import (
	"github.com/vkngwrapper/capture/api"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func sortedKeys[V any](m map[api.HandleID]V) []api.HandleID {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}
