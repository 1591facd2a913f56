package ringcentral

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"slices"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/ringsync/pkg/domain/model"
	"github.com/secmon-lab/ringsync/pkg/domain/types"
	"github.com/secmon-lab/ringsync/pkg/utils/logging"
)

const queuePageSize = "1000"

// QueueService synchronizes call-queue memberships. The platform offers no
// create or delete for call queues, and the queue record itself is never
// updated: only its membership is reconciled.
type QueueService interface {
	// Create always fails: not supported by the platform
	Create(ctx context.Context, queue *model.CallQueue) (*model.CallQueue, error)
	// Delete always fails: not supported by the platform
	Delete(ctx context.Context, id string) error
	// Get fetches the queue and attaches its current member ids, which the
	// platform only exposes through a separate members sub-resource
	Get(ctx context.Context, id string) (*model.CallQueue, error)
	// List returns call queues, optionally filtered by a member extension id
	List(ctx context.Context, memberID string) ([]model.CallQueue, error)
	// SyncMembers diffs the desired member set against the current one and
	// applies the difference in a single bulk-assign request
	SyncMembers(ctx context.Context, id string, desired []string) error
}

type queueService struct {
	client *Client
}

// Queues returns the call-queue synchronization service of this client
func (x *Client) Queues() QueueService {
	return &queueService{client: x}
}

func (x *queueService) Create(ctx context.Context, queue *model.CallQueue) (*model.CallQueue, error) {
	return nil, goerr.Wrap(ErrUnsupported, "create of call queue not supported by API")
}

func (x *queueService) Delete(ctx context.Context, id string) error {
	return goerr.Wrap(ErrUnsupported, "delete of call queue not supported by API")
}

func (x *queueService) Get(ctx context.Context, id string) (*model.CallQueue, error) {
	var queue model.CallQueue
	if err := x.client.do(ctx, types.RateLimitLight, http.MethodGet, accountPath+"call-queues/"+id, nil, &queue); err != nil {
		return nil, goerr.Wrap(err, "failed to get call queue", goerr.V("id", id))
	}

	members, err := x.members(ctx, id)
	if err != nil {
		return nil, err
	}
	queue.MemberIDs = members

	return &queue, nil
}

func (x *queueService) List(ctx context.Context, memberID string) ([]model.CallQueue, error) {
	path := accountPath + "call-queues?perPage=" + queuePageSize
	if memberID != "" {
		path += "&memberExtensionId=" + url.QueryEscape(memberID)
	}

	var resp listCallQueuesResponse
	if err := x.client.do(ctx, types.RateLimitMedium, http.MethodGet, path, nil, &resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			logging.From(ctx).Info("call queue listing returned no match", "memberID", memberID)
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to list call queues")
	}

	records := resp.Records
	if memberID != "" && len(x.client.queueAllowList) > 0 {
		var allowed []model.CallQueue
		for _, queue := range records {
			if slices.Contains(x.client.queueAllowList, queue.ID) {
				allowed = append(allowed, queue)
			}
		}
		records = allowed
	}

	return records, nil
}

func (x *queueService) SyncMembers(ctx context.Context, id string, desired []string) error {
	current, err := x.members(ctx, id)
	if err != nil {
		return err
	}

	toAdd, toRemove := diffMembers(current, desired)

	payload := model.BulkAssign{
		AddedExtensionIDs:   toAdd,
		RemovedExtensionIDs: toRemove,
	}
	// bulk-assign answers HTTP 204 with no body; the transport treats that as
	// an empty result, not a parse failure
	if err := x.client.do(ctx, types.RateLimitHeavy, http.MethodPost, accountPath+"call-queues/"+id+"/bulk-assign", payload, nil); err != nil {
		return goerr.Wrap(err, "failed to bulk-assign call queue members", goerr.V("id", id))
	}

	return nil
}

// members fetches the current member ids of a queue from its members
// sub-resource
func (x *queueService) members(ctx context.Context, id string) ([]string, error) {
	var resp listCallQueuesResponse
	if err := x.client.do(ctx, types.RateLimitLight, http.MethodGet, accountPath+"call-queues/"+id+"/members", nil, &resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			logging.From(ctx).Info("call queue has no member records", "id", id)
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get call queue members", goerr.V("id", id))
	}

	members := make([]string, 0, len(resp.Records))
	for _, record := range resp.Records {
		members = append(members, record.ID)
	}
	return members, nil
}

// diffMembers computes the set differences between the current and desired
// member sets. Order of inputs is irrelevant and duplicates count once.
func diffMembers(current, desired []string) (toAdd, toRemove []string) {
	currentSet := map[string]bool{}
	for _, id := range current {
		currentSet[id] = true
	}
	desiredSet := map[string]bool{}
	for _, id := range desired {
		desiredSet[id] = true
	}

	toAdd = []string{}
	added := map[string]bool{}
	for _, id := range desired {
		if !currentSet[id] && !added[id] {
			added[id] = true
			toAdd = append(toAdd, id)
		}
	}

	toRemove = []string{}
	removed := map[string]bool{}
	for _, id := range current {
		if !desiredSet[id] && !removed[id] {
			removed[id] = true
			toRemove = append(toRemove, id)
		}
	}

	return toAdd, toRemove
}
