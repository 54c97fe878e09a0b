package tracker

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/capture/wrappers"
)

func (t *Tracker) CreateDescriptorPool(args api.CreateDescriptorPoolArgs) (*wrappers.DescriptorPool, error) {
	t.logger.Debug("Tracker::CreateDescriptorPool")

	pool := &wrappers.DescriptorPool{
		Wrapper: t.newWrapper(api.ObjectTypeDescriptorPool, args.Pool, args.Device, api.CallCreateDescriptorPool, args),
		Device:  args.Device,
		Flags:   args.Flags,
		MaxSets: args.MaxSets,
	}

	err := t.track(pool, nil)
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// AllocateDescriptorSets tracks descriptor sets allocated from a pool. Each set is owned by the pool
// and keeps the arguments that would have allocated it alone.
func (t *Tracker) AllocateDescriptorSets(args api.AllocateDescriptorSetsArgs) ([]*wrappers.DescriptorSet, error) {
	t.logger.Debug("Tracker::AllocateDescriptorSets")

	if len(args.SetLayouts) != len(args.Sets) {
		return nil, errors.Newf("%d layouts were provided for %d descriptor sets", len(args.SetLayouts), len(args.Sets))
	}

	pool, err := lookup[*wrappers.DescriptorPool](t, api.ObjectTypeDescriptorPool, args.Pool)
	if err != nil {
		return nil, err
	}

	sets := make([]*wrappers.DescriptorSet, 0, len(args.Sets))
	for i, handle := range args.Sets {
		params := api.AllocateDescriptorSetsArgs{
			Device:     args.Device,
			Pool:       args.Pool,
			SetLayouts: []api.Handle{args.SetLayouts[i]},
			Sets:       []api.Handle{handle},
		}

		layout, layoutErr := lookup[*wrappers.DescriptorSetLayout](t, api.ObjectTypeDescriptorSetLayout, args.SetLayouts[i])
		if layoutErr != nil {
			err = errors.CombineErrors(err, layoutErr)
		}

		set := wrappers.NewDescriptorSet(
			t.newWrapper(api.ObjectTypeDescriptorSet, handle, args.Device, api.CallAllocateDescriptorSets, params),
			args.Device, args.Pool, layout,
		)

		trackErr := t.track(set, pool)
		if trackErr != nil {
			err = errors.CombineErrors(err, trackErr)
			continue
		}
		sets = append(sets, set)
	}

	return sets, err
}

// FreeDescriptorSets stops tracking individual descriptor sets
func (t *Tracker) FreeDescriptorSets(args api.FreeDescriptorSetsArgs) error {
	t.logger.Debug("Tracker::FreeDescriptorSets")

	var err error
	for _, handle := range args.Sets {
		if handle == api.NullHandle {
			continue
		}
		err = errors.CombineErrors(err, t.Destroy(api.ObjectTypeDescriptorSet, handle))
	}
	return err
}

// UpdateDescriptorSets applies descriptor writes, then descriptor copies, to the contents of the
// destination sets
func (t *Tracker) UpdateDescriptorSets(args api.UpdateDescriptorSetsArgs) error {
	t.logger.Debug("Tracker::UpdateDescriptorSets")

	var err error
	for _, write := range args.Writes {
		set, lookupErr := lookup[*wrappers.DescriptorSet](t, api.ObjectTypeDescriptorSet, write.DstSet)
		if lookupErr != nil {
			err = errors.CombineErrors(err, lookupErr)
			continue
		}
		set.Write(write)
	}

	for _, descriptorCopy := range args.Copies {
		src, lookupErr := lookup[*wrappers.DescriptorSet](t, api.ObjectTypeDescriptorSet, descriptorCopy.SrcSet)
		if lookupErr != nil {
			err = errors.CombineErrors(err, lookupErr)
			continue
		}
		dst, lookupErr := lookup[*wrappers.DescriptorSet](t, api.ObjectTypeDescriptorSet, descriptorCopy.DstSet)
		if lookupErr != nil {
			err = errors.CombineErrors(err, lookupErr)
			continue
		}
		dst.Copy(src, descriptorCopy)
	}

	return err
}
