package chatlog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAppendsJSONL(t *testing.T) {
	original := logFilePath
	logFilePath = filepath.Join(t.TempDir(), "conversations.jsonl")
	t.Cleanup(func() { logFilePath = original })

	svc := &Service{queue: make(chan Entry, bufferSize)}

	svc.write(Entry{Guest: "Jorge", Query: "tem piscina?", Reply: "sim", Topic: "generic", Timestamp: time.Now()})
	svc.write(Entry{Guest: "Ana", Query: "quem vai?", Reply: "vê a lista", Topic: "confirmed_list", Timestamp: time.Now()})

	file, err := os.Open(logFilePath)
	require.NoError(t, err)
	defer file.Close()

	var entries []Entry

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry Entry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, entries, 2)
	assert.Equal(t, "Jorge", entries[0].Guest)
	assert.Equal(t, "confirmed_list", entries[1].Topic)
}

func TestAppendNeverBlocks(t *testing.T) {
	svc := &Service{queue: make(chan Entry, 1)}

	done := make(chan struct{})
	go func() {
		defer close(done)

		for i := 0; i < 10; i++ {
			svc.Append(Entry{Guest: "Jorge"})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Append blocked on a full queue")
	}
}

func TestAppendAfterShutdownIsSwallowed(t *testing.T) {
	svc := &Service{queue: make(chan Entry, 1)}
	require.NoError(t, svc.Shutdown())

	assert.NotPanics(t, func() {
		svc.Append(Entry{Guest: "Jorge"})
	})
}
