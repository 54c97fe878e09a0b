package tracker

import "github.com/vkngwrapper/core/v2/common"

// CreateFlags indicate specific tracker behaviors to activate or deactivate
type CreateFlags int32

var trackerCreateFlagsMapping = common.NewFlagStringMapping[CreateFlags]()

func (f CreateFlags) Register(str string) {
	trackerCreateFlagsMapping.Register(f, str)
}
func (f CreateFlags) String() string {
	return trackerCreateFlagsMapping.FlagsToString(f)
}

const (
	// TrackerCreateExternallySynchronized ensures that this tracker will not be synchronized internally.
	// The consumer must guarantee that handlers are called from only one thread at a time or are
	// synchronized by some other mechanism, but performance may improve because internal mutexes are
	// not used.
	TrackerCreateExternallySynchronized CreateFlags = 1 << iota
	// TrackerCreateSkipCommandData instructs the tracker to discard the command bytes passed to
	// RecordCommand. Derived state such as pending layouts and referenced objects is still tracked,
	// but snapshots will not be able to restore the contents of command buffers.
	TrackerCreateSkipCommandData
)

func init() {
	TrackerCreateExternallySynchronized.Register("TrackerCreateExternallySynchronized")
	TrackerCreateSkipCommandData.Register("TrackerCreateSkipCommandData")
}

// CreateOptions contains optional settings when creating a tracker
type CreateOptions struct {
	// Flags indicates specific tracker behaviors to activate or deactivate
	Flags CreateFlags
}
