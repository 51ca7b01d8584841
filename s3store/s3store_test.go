/* Copyright (c) 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package s3store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gregjones/httpcache/test"
)

// memS3 is an in-memory stand-in for the handful of S3 calls Store makes.
type memS3 struct {
	mu           sync.Mutex
	objects      map[string][]byte
	contentTypes map[string]string
}

func newMemS3() *memS3 {
	return &memS3{
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
	}
}

func (m *memS3) GetObject(_ context.Context, in *s3.GetObjectInput,
	_ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {

	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (m *memS3) PutObject(_ context.Context, in *s3.PutObjectInput,
	_ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {

	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[*in.Key] = data
	if in.ContentType != nil {
		m.contentTypes[*in.Key] = *in.ContentType
	}
	return &s3.PutObjectOutput{}, nil
}

func (m *memS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput,
	_ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func (m *memS3) HeadBucket(context.Context, *s3.HeadBucketInput,
	...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, nil
}

func (m *memS3) ListObjectsV2(context.Context, *s3.ListObjectsV2Input,
	...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	return &s3.ListObjectsV2Output{}, nil
}

func newMemStore(gzip bool) (*Store, *memS3) {
	fake := newMemS3()
	store := New(context.Background(), "test-bucket", gzip, false)
	store.Client = fake
	return store, fake
}

func TestStoreCache(t *testing.T) {
	store, _ := newMemStore(false)
	test.Cache(t, store)
}

func TestStoreCacheWithGzip(t *testing.T) {
	store, fake := newMemStore(true)
	test.Cache(t, store)

	store.Set("feed", []byte(`{"status":true}`))
	for key, data := range fake.objects {
		if !strings.HasSuffix(key, ".gz") {
			t.Errorf("gzip store wrote uncompressed key %v", key)
		}
		if len(data) < 2 || data[0] != 0x1f || data[1] != 0x8b {
			t.Errorf("object %v is not gzip data", key)
		}
	}
	got, ok := store.Get("feed")
	if !ok || string(got) != `{"status":true}` {
		t.Errorf("Get(feed) = %q, %v", got, ok)
	}
}

func TestPublish(t *testing.T) {
	store, fake := newMemStore(false)
	store.PublicBaseURL = "https://cdn.example.test/"

	url, err := store.Publish(context.Background(), "/euro/final.svg",
		"image/svg+xml", strings.NewReader("<svg/>"))
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if url != "https://cdn.example.test/brackets/euro/final.svg" {
		t.Errorf("url = %q", url)
	}
	if got := string(fake.objects["brackets/euro/final.svg"]); got != "<svg/>" {
		t.Errorf("stored body = %q", got)
	}
	if ct := fake.contentTypes["brackets/euro/final.svg"]; ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}

	if _, err := store.Publish(context.Background(), "", "text/plain",
		strings.NewReader("x")); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestPublicURLDefault(t *testing.T) {
	store := New(context.Background(), "bkt", false, false)
	if got := store.PublicURL("brackets/a.png"); got != "https://bkt.s3.amazonaws.com/brackets/a.png" {
		t.Errorf("PublicURL = %q", got)
	}
}

// TestS3Store exercises a real bucket when BRACKETVIEW_TEST_BUCKET names one
// the current credentials can reach.
func TestS3Store(t *testing.T) {
	bucket := os.Getenv("BRACKETVIEW_TEST_BUCKET")
	if bucket == "" {
		t.Skip("Skipping test because BRACKETVIEW_TEST_BUCKET is unset")
	}
	store := New(context.Background(), bucket, true, true)
	if err := store.Init(); err != nil {
		t.Skip(fmt.Sprintf("Skipping test due to lack of access to %v: %v",
			bucket, err))
	}

	test.Cache(t, store)
}
