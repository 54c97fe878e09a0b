package tracker

import (
	"strconv"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/capture/wrappers"
)

// Statistics holds the number of live objects of each type
type Statistics struct {
	ObjectCount int
	TypeCounts  [api.ObjectTypeCount]int
}

func (s *Statistics) Clear() {
	s.ObjectCount = 0
	for i := range s.TypeCounts {
		s.TypeCounts[i] = 0
	}
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.ObjectCount += other.ObjectCount
	for i := range s.TypeCounts {
		s.TypeCounts[i] += other.TypeCounts[i]
	}
}

// CalculateStatistics counts the live objects of each type
func (t *Tracker) CalculateStatistics(stats *Statistics) {
	stats.Clear()

	for objectType := api.ObjectTypeUnknown + 1; objectType < api.ObjectTypeCount; objectType++ {
		count := t.registry.Count(objectType)
		stats.TypeCounts[objectType] = count
		stats.ObjectCount += count
	}
}

// BuildStatsString renders the live object counts as a JSON document. If detailed is true, every live
// object is listed under its type.
func (t *Tracker) BuildStatsString(detailed bool) string {
	var stats Statistics
	t.CalculateStatistics(&stats)

	writer := jwriter.NewWriter()
	obj := writer.Object()

	obj.Name("Total").Int(stats.ObjectCount)

	types := obj.Name("Types").Object()
	for objectType := api.ObjectTypeUnknown + 1; objectType < api.ObjectTypeCount; objectType++ {
		if stats.TypeCounts[objectType] == 0 {
			continue
		}

		typeObj := types.Name(objectType.String()).Object()
		typeObj.Name("Count").Int(stats.TypeCounts[objectType])

		if detailed {
			objects := typeObj.Name("Objects").Array()
			for _, object := range t.registry.Objects(objectType) {
				objectObj := objects.Object()
				printParameters(object.Base(), &objectObj)
				objectObj.End()
			}
			objects.End()
		}

		typeObj.End()
	}
	types.End()

	obj.End()
	return string(writer.Bytes())
}

func printParameters(base *wrappers.Wrapper, json *jwriter.ObjectState) {
	json.Name("ID").String(strconv.FormatUint(uint64(base.ID), 10))
	json.Name("Handle").String(base.Handle.String())
	json.Name("CreateCall").String(base.CreateCall.String())
	if base.Parent != api.NullHandle {
		json.Name("Parent").String(base.Parent.String())
	}
}
