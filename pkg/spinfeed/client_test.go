package spinfeed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SlpAus/zonk-wheel-backend/pkg/spinapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFakeServer 搭建一个遵守契约的假服务端，并统计列表请求次数。
func newFakeServer(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()

	var records []spinapi.SpinRecord
	var nextID uint = 1
	var listCalls atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc(spinapi.SpinsPath, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			listCalls.Add(1)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(records)
		case http.MethodPost:
			var input spinapi.SpinInput
			if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Result == "" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			record := spinapi.SpinRecord{
				ID:            nextID,
				AccountID:     "0191d2a6-0000-7000-8000-000000000042",
				Result:        input.Result,
				Outcome:       spinapi.ClassifyResult(input.Result),
				CoinDelta:     input.CoinDelta,
				FreeSpinDelta: input.FreeSpinDelta,
				CreatedAt:     time.Now(),
			}
			nextID++
			records = append([]spinapi.SpinRecord{record}, records...)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(record)
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &listCalls
}

func TestListSpinsUsesCache(t *testing.T) {
	server, listCalls := newFakeServer(t)
	client := NewClient(server.URL)
	ctx := context.Background()

	_, err := client.ListSpins(ctx)
	require.NoError(t, err)
	_, err = client.ListSpins(ctx)
	require.NoError(t, err)

	// 第二次读取命中缓存，不发起网络请求
	assert.EqualValues(t, 1, listCalls.Load())
}

func TestCreateSpinInvalidatesCache(t *testing.T) {
	server, listCalls := newFakeServer(t)
	client := NewClient(server.URL)
	ctx := context.Background()

	before, err := client.ListSpins(ctx)
	require.NoError(t, err)
	assert.Empty(t, before)

	record, err := client.CreateSpin(ctx, spinapi.SpinInput{Result: "1000 Coins", CoinDelta: 1000})
	require.NoError(t, err)
	assert.NotZero(t, record.ID)

	// 提交成功后缓存失效，下一次读取必须包含新记录
	after, err := client.ListSpins(ctx)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, record.ID, after[0].ID)
	assert.EqualValues(t, 2, listCalls.Load())
}

func TestCreateSpinRejectedInputIsError(t *testing.T) {
	server, _ := newFakeServer(t)
	client := NewClient(server.URL)

	_, err := client.CreateSpin(context.Background(), spinapi.SpinInput{CoinDelta: 50})
	require.Error(t, err)
}

func TestMalformedResponseIsFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 缺少服务端必填字段的记录不符合契约
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"result":"","coinDelta":1}]`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL)
	_, err := client.ListSpins(context.Background())
	require.Error(t, err)
}

func TestServerErrorIsFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL)
	_, err := client.ListSpins(context.Background())
	require.Error(t, err)
	_, err = client.CreateSpin(context.Background(), spinapi.SpinInput{Result: "1000 Coins"})
	require.Error(t, err)
	_, err = client.Wallet(context.Background())
	require.Error(t, err)
}
