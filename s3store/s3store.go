/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 *
 * Package s3store keeps bracketview's objects in Amazon S3. A Store serves two
 * roles: it implements httpcache.Cache so fetched feeds and flag images survive
 * process restarts, and it publishes rendered brackets under a public prefix.
 */
package s3store

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

const (
	cachePrefix   = "s3cache"
	publishPrefix = "brackets"
)

// ObjectAPI is the subset of *s3.Client the store uses.
type ObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput,
		optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput,
		optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput,
		optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput,
		optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input,
		optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Store objects store and retrieve data using Amazon S3.
type Store struct {
	// Config is the Amazon S3 configuration.
	Config aws.Config

	// Client is initialized in Init() from the default Config. Callers may
	// override it (tests substitute a fake) and skip Init.
	Client ObjectAPI

	// PublicBaseURL prefixes published object keys when building the URL
	// returned by Publish. Empty means https://<bucket>.s3.amazonaws.com.
	PublicBaseURL string

	bucketName string

	// gzip indicates whether cache entries are gzipped in Set and gunzipped
	// in Get. Compressed keys carry a ".gz" suffix.
	gzip bool

	logErrors bool

	// used for the httpcache.Cache methods, which carry no context
	ctx context.Context
}

// New returns a new Store with underlying storage in the given bucket.
// Callers should invoke Init() on the returned Store before use unless they
// assign Client themselves.
func New(ctxIn context.Context, bucketNameIn string, gzipIn bool,
	logErrorsIn bool) *Store {

	return &Store{
		ctx:        ctxIn,
		bucketName: bucketNameIn,
		gzip:       gzipIn,
		logErrors:  logErrorsIn,
	}
}

// Init loads the default AWS configuration (environment variables, then the
// shared config and credentials files) and verifies the bucket is reachable
// and listable.
func (c *Store) Init() error {
	if c.bucketName == "" {
		return errors.New("s3store.init: no bucket configured")
	}

	var err error
	c.Config, err = config.LoadDefaultConfig(c.ctx)
	if err != nil {
		return fmt.Errorf("s3store.init: failed to load AWS config: %w", err)
	}
	client := s3.NewFromConfig(c.Config)

	if _, err = client.HeadBucket(c.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucketName),
	}); err != nil {
		return fmt.Errorf("s3store.init: head bucket failed for %s: %w", c.bucketName, err)
	}
	if _, err = client.ListObjectsV2(c.ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.bucketName),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("s3store.init: list objects failed for %s: %w", c.bucketName, err)
	}

	c.Client = client
	return nil
}

func (c *Store) Bucket() string {
	return c.bucketName
}

// Get returns the cached response stored under key.
func (c *Store) Get(key string) ([]byte, bool) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(c.cacheKeyToObjectKey(key)),
	}

	resp, err := c.Client.GetObject(c.ctx, input)
	if err != nil {
		// NoSuchKey is just a cache miss
		if c.logErrors && !isNoSuchKey(err) {
			log.Printf("s3store.get: failed to get object %v%v: %v", *input.Bucket,
				*input.Key, err)
		}
		return nil, false
	}
	defer resp.Body.Close()

	var rdr io.Reader = resp.Body
	if c.gzip {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			if c.logErrors {
				log.Printf("s3store.get: failed to open compressed object %v%v: %v",
					*input.Bucket, *input.Key, err)
			}
			return nil, false
		}
		defer gz.Close()
		rdr = gz
	}

	data, err := io.ReadAll(rdr)
	if err != nil {
		if c.logErrors {
			log.Printf("s3store.get: failed to read object %v%v: %v",
				*input.Bucket, *input.Key, err)
		}
		return nil, false
	}

	return data, true
}

// Set stores the provided data in the cache under the given key.
func (c *Store) Set(key string, data []byte) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(c.cacheKeyToObjectKey(key)),
		Body:   bytes.NewReader(data),
	}

	if c.gzip {
		buf, err := gzipBytes(data)
		if err != nil {
			if c.logErrors {
				log.Printf("s3store.set: failed to gzip data for %v%v: %v",
					*input.Bucket, *input.Key, err)
			}
			return
		}
		input.Body = bytes.NewReader(buf)
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := c.Client.PutObject(c.ctx, input); err != nil && c.logErrors {
		log.Printf("s3store.set: put failed for %v%v: %v", *input.Bucket,
			*input.Key, err)
	}
}

func (c *Store) Delete(key string) {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(c.cacheKeyToObjectKey(key)),
	}

	if _, err := c.Client.DeleteObject(c.ctx, input); err != nil && c.logErrors {
		log.Printf("s3store.delete: delete failed: %v", err)
	}
}

// Publish uploads a rendered bracket under the public prefix and returns the
// URL it can be fetched from.
func (c *Store) Publish(ctx context.Context, name string, contentType string,
	body io.Reader) (string, error) {

	name = strings.TrimLeft(name, "/")
	if name == "" {
		return "", errors.New("s3store.publish: empty object name")
	}
	key := publishPrefix + "/" + name

	_, err := c.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(c.bucketName),
		Key:          aws.String(key),
		Body:         body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=60"),
	})
	if err != nil {
		return "", fmt.Errorf("s3store.publish: put failed for %v/%v: %w",
			c.bucketName, key, err)
	}

	return c.PublicURL(key), nil
}

// PublicURL returns the URL for an object key in the bucket.
func (c *Store) PublicURL(key string) string {
	base := c.PublicBaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.amazonaws.com", c.bucketName)
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}

func (c *Store) cacheKeyToObjectKey(key string) string {
	h := md5.New()
	io.WriteString(h, key)
	objKey := fmt.Sprintf("/%v/%v", cachePrefix, hex.EncodeToString(h.Sum(nil)))
	if c.gzip {
		objKey += ".gz"
	}

	return objKey
}

func isNoSuchKey(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey"
}

func gzipBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(data); err != nil {
		return nil, err
	}
	if err := gw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
