package ringcentral_test

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/secmon-lab/ringsync/pkg/domain/model"
	"github.com/secmon-lab/ringsync/pkg/service/ringcentral"
)

func TestDiffMembers(t *testing.T) {
	t.Run("diffing a set against itself is empty", func(t *testing.T) {
		toAdd, toRemove := ringcentral.DiffMembers([]string{"A", "B"}, []string{"A", "B"})
		gt.Array(t, toAdd).Length(0)
		gt.Array(t, toRemove).Length(0)
	})

	t.Run("computes add and remove sets", func(t *testing.T) {
		toAdd, toRemove := ringcentral.DiffMembers([]string{"A", "B"}, []string{"B", "C"})
		gt.Array(t, toAdd).Equal([]string{"C"})
		gt.Array(t, toRemove).Equal([]string{"A"})
	})

	t.Run("is order independent", func(t *testing.T) {
		add1, remove1 := ringcentral.DiffMembers([]string{"A", "B", "C"}, []string{"C", "D"})
		add2, remove2 := ringcentral.DiffMembers([]string{"C", "B", "A"}, []string{"D", "C"})

		sort.Strings(add1)
		sort.Strings(add2)
		sort.Strings(remove1)
		sort.Strings(remove2)

		gt.Array(t, add1).Equal(add2)
		gt.Array(t, remove1).Equal(remove2)
	})

	t.Run("duplicates count once", func(t *testing.T) {
		toAdd, toRemove := ringcentral.DiffMembers([]string{"A", "A"}, []string{"B", "B"})
		gt.Array(t, toAdd).Equal([]string{"B"})
		gt.Array(t, toRemove).Equal([]string{"A"})
	})

	t.Run("empty inputs", func(t *testing.T) {
		toAdd, toRemove := ringcentral.DiffMembers(nil, []string{"A"})
		gt.Array(t, toAdd).Equal([]string{"A"})
		gt.Array(t, toRemove).Length(0)
	})
}

func TestQueueCreateAndDeleteUnsupported(t *testing.T) {
	client := newTestClient(t, http.NewServeMux())

	_, err := client.Queues().Create(context.Background(), &model.CallQueue{Name: "support"})
	gt.Error(t, err).Is(ringcentral.ErrUnsupported)

	err = client.Queues().Delete(context.Background(), "22")
	gt.Error(t, err).Is(ringcentral.ErrUnsupported)
}

func TestQueueSyncMembers(t *testing.T) {
	var payload model.BulkAssign

	mux := http.NewServeMux()
	mux.HandleFunc("GET /restapi/v1.0/account/~/call-queues/22/members", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"records":[{"id":"A"},{"id":"B"}]}`)) //nolint:errcheck
	})
	mux.HandleFunc("POST /restapi/v1.0/account/~/call-queues/22/bulk-assign", func(w http.ResponseWriter, r *http.Request) {
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		// the platform answers bulk-assign with no body
		w.WriteHeader(http.StatusNoContent)
	})

	client := newTestClient(t, mux)

	gt.NoError(t, client.Queues().SyncMembers(context.Background(), "22", []string{"B", "C"}))
	gt.Array(t, payload.AddedExtensionIDs).Equal([]string{"C"})
	gt.Array(t, payload.RemovedExtensionIDs).Equal([]string{"A"})
}

func TestQueueGetAttachesMembers(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /restapi/v1.0/account/~/call-queues/22", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"22","name":"support","extensionNumber":"101"}`)) //nolint:errcheck
	})
	mux.HandleFunc("GET /restapi/v1.0/account/~/call-queues/22/members", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"records":[{"id":"A"},{"id":"B"}]}`)) //nolint:errcheck
	})

	client := newTestClient(t, mux)

	queue, err := client.Queues().Get(context.Background(), "22")
	gt.NoError(t, err).Required()
	gt.Value(t, queue.Name).Equal("support")
	gt.Value(t, queue.ExtensionNumber).Equal("101")
	gt.Array(t, queue.MemberIDs).Equal([]string{"A", "B"})
}

func TestQueueList(t *testing.T) {
	queuesBody := `{"records":[{"id":"1","name":"q1"},{"id":"2","name":"q2"},{"id":"3","name":"q3"}]}`

	t.Run("member filter sets query parameter", func(t *testing.T) {
		var query string
		mux := http.NewServeMux()
		mux.HandleFunc("GET /restapi/v1.0/account/~/call-queues", func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.RawQuery
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(queuesBody)) //nolint:errcheck
		})

		client := newTestClient(t, mux)

		queues, err := client.Queues().List(context.Background(), "777")
		gt.NoError(t, err).Required()
		gt.Array(t, queues).Length(3)
		gt.Value(t, query).Equal("perPage=1000&memberExtensionId=777")
	})

	t.Run("allow-list restricts member-filtered results", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /restapi/v1.0/account/~/call-queues", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(queuesBody)) //nolint:errcheck
		})

		client := newTestClient(t, mux, ringcentral.WithQueueAllowList([]string{"2"}))

		queues, err := client.Queues().List(context.Background(), "777")
		gt.NoError(t, err).Required()
		gt.Array(t, queues).Length(1)
		gt.Value(t, queues[0].ID).Equal("2")
	})

	t.Run("allow-list does not apply without member filter", func(t *testing.T) {
		var query string
		mux := http.NewServeMux()
		mux.HandleFunc("GET /restapi/v1.0/account/~/call-queues", func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.RawQuery
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(queuesBody)) //nolint:errcheck
		})

		client := newTestClient(t, mux, ringcentral.WithQueueAllowList([]string{"2"}))

		queues, err := client.Queues().List(context.Background(), "")
		gt.NoError(t, err).Required()
		gt.Array(t, queues).Length(3)
		gt.Value(t, query).Equal("perPage=1000")
	})
}
