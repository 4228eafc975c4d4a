package gcpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	compute "google.golang.org/api/compute/v1"
	"google.golang.org/api/googleapi"
)

func createMuxAndServer() (*http.ServeMux, *httptest.Server) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	return mux, server
}

func handler(err *googleapi.Error, obj interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		handleTestRequest(w, err, obj)
	}
}

func handleTestRequest(w http.ResponseWriter, handleErr *googleapi.Error, obj interface{}) {
	if handleErr != nil {
		http.Error(w, errMsg(handleErr), handleErr.Code)
		return
	}
	res, err := json.Marshal(obj)
	if err != nil {
		http.Error(w, "json marshal error", http.StatusInternalServerError)
		return
	}
	_, _ = w.Write(res)
}

func errMsg(e *googleapi.Error) string {
	res, err := json.Marshal(&errorReply{e})
	if err != nil {
		return "json marshal error"
	}
	return string(res)
}

type errorReply struct {
	Error *googleapi.Error `json:"error"`
}

func createMuxServerAndComputeClient(t *testing.T) (*http.ServeMux, *httptest.Server, *ComputeService) {
	t.Helper()
	mux, server := createMuxAndServer()
	client, err := NewComputeServiceForURL(context.Background(), server.Client(), server.URL)
	if err != nil {
		server.Close()
		t.Fatalf("unable to create compute service: %v", err)
	}
	client.pollInterval = time.Millisecond
	return mux, server, client
}

func TestRegionsGet(t *testing.T) {
	mux, server, client := createMuxServerAndComputeClient(t)
	defer server.Close()
	responseRegion := compute.Region{
		Name: "southamerica-east1",
		Zones: []string{
			"https://www.googleapis.com/compute/v1/projects/projectName/zones/southamerica-east1-b",
			"https://www.googleapis.com/compute/v1/projects/projectName/zones/southamerica-east1-a",
		},
	}
	mux.Handle("/compute/v1/projects/projectName/regions/southamerica-east1", handler(nil, &responseRegion))

	region, err := client.RegionsGet(context.Background(), "projectName", "southamerica-east1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if region.Name != "southamerica-east1" {
		t.Errorf("expected southamerica-east1 got %v", region.Name)
	}
	if len(region.Zones) != 2 || !strings.HasSuffix(region.Zones[0], "/zones/southamerica-east1-b") {
		t.Errorf("zones not returned in provider order: %v", region.Zones)
	}
}

func TestRegionsGetError(t *testing.T) {
	mux, server, client := createMuxServerAndComputeClient(t)
	defer server.Close()
	mux.Handle("/compute/v1/projects/projectName/regions/nowhere1", handler(&googleapi.Error{
		Code:    http.StatusNotFound,
		Message: "The resource 'projects/projectName/regions/nowhere1' was not found",
	}, nil))

	_, err := client.RegionsGet(context.Background(), "projectName", "nowhere1")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !IsNotFound(err) {
		t.Errorf("expected not found error, got %v", err)
	}
	if msg := ErrorMessage(err); !strings.Contains(msg, "was not found") {
		t.Errorf("unexpected error message %q", msg)
	}
}

func TestInstancesInsert(t *testing.T) {
	mux, server, client := createMuxServerAndComputeClient(t)
	defer server.Close()

	var (
		mu          sync.Mutex
		gotBody     map[string]interface{}
		gotRequests []string
	)
	mux.HandleFunc("/compute/v1/projects/projectName/zones/zoneName/instances", func(w http.ResponseWriter, req *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		if req.Method != http.MethodPost {
			http.Error(w, "unexpected method", http.StatusMethodNotAllowed)
			return
		}
		gotRequests = append(gotRequests, req.URL.Query().Get("requestId"))
		data, _ := io.ReadAll(req.Body)
		_ = json.Unmarshal(data, &gotBody)
		handleTestRequest(w, nil, &compute.Operation{Id: 3001, Name: "op-1", Zone: "zoneName"})
	})

	instance := &compute.Instance{Name: "instanceName"}
	for i := 0; i < 2; i++ {
		op, err := client.InstancesInsert(context.Background(), "projectName", "zoneName", instance)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if op.Id != uint64(3001) {
			t.Errorf("expected %v got %v", 3001, op.Id)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if gotBody["name"] != "instanceName" {
		t.Errorf("expected instance body with name, got %v", gotBody)
	}
	if len(gotRequests) != 2 || gotRequests[0] == "" || gotRequests[0] == gotRequests[1] {
		t.Errorf("expected distinct request ids per call, got %v", gotRequests)
	}
}

func TestInstancesInsertAlreadyExists(t *testing.T) {
	mux, server, client := createMuxServerAndComputeClient(t)
	defer server.Close()
	mux.Handle("/compute/v1/projects/projectName/zones/zoneName/instances", handler(&googleapi.Error{
		Code:    http.StatusConflict,
		Message: "The resource 'projects/projectName/zones/zoneName/instances/instanceName' already exists",
	}, nil))

	_, err := client.InstancesInsert(context.Background(), "projectName", "zoneName", &compute.Instance{Name: "instanceName"})
	if !IsAlreadyExists(err) {
		t.Errorf("expected already exists error, got %v", err)
	}
	if IsNotFound(err) {
		t.Error("conflict must not be reported as not found")
	}
}

func TestWaitForOperationSuccess(t *testing.T) {
	_, server, client := createMuxServerAndComputeClient(t)
	defer server.Close()
	op := &compute.Operation{
		Id:     3001,
		Status: OperationDone,
	}
	if err := client.WaitForOperation(context.Background(), "projectName", op); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestWaitForOperationPolls(t *testing.T) {
	mux, server, client := createMuxServerAndComputeClient(t)
	defer server.Close()

	var (
		mu    sync.Mutex
		calls int
	)
	mux.HandleFunc("/compute/v1/projects/projectName/zones/zoneName/operations/op-1", func(w http.ResponseWriter, req *http.Request) {
		mu.Lock()
		calls++
		status := "RUNNING"
		if calls >= 2 {
			status = OperationDone
		}
		mu.Unlock()
		handleTestRequest(w, nil, &compute.Operation{Name: "op-1", Zone: "zoneName", Status: status})
	})

	op := &compute.Operation{
		Name:   "op-1",
		Zone:   "https://www.googleapis.com/compute/v1/projects/projectName/zones/zoneName",
		Status: "PENDING",
	}
	if err := client.WaitForOperation(context.Background(), "projectName", op); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 2 {
		t.Errorf("expected 2 polls, got %d", calls)
	}
}

func TestWaitForOperationError(t *testing.T) {
	_, server, client := createMuxServerAndComputeClient(t)
	defer server.Close()
	responseErrors := []*compute.OperationErrorErrors{
		{Message: "QUOTA_EXCEEDED"},
		{Message: "testerrorthrown"},
	}
	op := &compute.Operation{
		Id: 3001,
		Error: &compute.OperationError{
			Errors: responseErrors,
		},
	}
	err := client.WaitForOperation(context.Background(), "projectName", op)
	if err == nil || err.Error() != "QUOTA_EXCEEDED\ntesterrorthrown" {
		t.Errorf("expected aggregated operation errors, got %v", err)
	}
}

func TestWaitForOperationGone(t *testing.T) {
	mux, server, client := createMuxServerAndComputeClient(t)
	defer server.Close()
	mux.Handle("/compute/v1/projects/projectName/zones/zoneName/operations/op-1", handler(&googleapi.Error{
		Code:    http.StatusNotFound,
		Message: "The resource 'projects/projectName/zones/zoneName/operations/op-1' was not found",
	}, nil))

	op := &compute.Operation{Name: "op-1", Zone: "zoneName", Status: "RUNNING"}
	err := client.WaitForOperation(context.Background(), "projectName", op)
	if err == nil {
		t.Fatal("expected an error for a vanished operation")
	}
	if !strings.Contains(err.Error(), `"op-1" no longer exists`) {
		t.Errorf("unexpected error: %v", err)
	}
	if !IsNotFound(err) {
		t.Errorf("error %v should still carry the not found status", err)
	}
}

func TestWaitForOperationCancelled(t *testing.T) {
	mux, server, client := createMuxServerAndComputeClient(t)
	defer server.Close()
	mux.Handle("/compute/v1/projects/projectName/zones/zoneName/operations/op-1",
		handler(nil, &compute.Operation{Name: "op-1", Zone: "zoneName", Status: "RUNNING"}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	op := &compute.Operation{Name: "op-1", Zone: "zoneName", Status: "RUNNING"}
	err := client.WaitForOperation(ctx, "projectName", op)
	if err == nil {
		t.Fatal("expected an error once the context expires")
	}
	if !strings.Contains(err.Error(), "timed out") && !strings.Contains(err.Error(), "context deadline exceeded") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestErrorMessagePlainError(t *testing.T) {
	err := fmt.Errorf("dial tcp: connection refused")
	if got := ErrorMessage(err); got != "dial tcp: connection refused" {
		t.Errorf("ErrorMessage() = %q", got)
	}
	if IsNotFound(err) || IsAlreadyExists(err) {
		t.Error("plain errors carry no status code")
	}
}
