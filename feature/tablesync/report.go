package tablesync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"

	"table-sync/core/storage"
)

// ReportInfo describes one archived run report.
type ReportInfo struct {
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Archive stores run reports as JSON objects under <prefix>/<family>/<date>/<run id>.json.
type Archive struct {
	client storage.Client
	bucket string
	prefix string
}

// NewArchive creates an archive writing to bucket under prefix.
func NewArchive(client storage.Client, bucket, prefix string) *Archive {
	return &Archive{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// ObjectName returns the object name report is stored under.
func (a *Archive) ObjectName(report *RunReport) string {
	return path.Join(a.prefix, report.Family, report.Started.UTC().Format("2006-01-02"), report.ID+".json")
}

// Save uploads report and returns its object name.
func (a *Archive) Save(ctx context.Context, report *RunReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	name := a.ObjectName(report)
	_, err = a.client.PutObject(ctx, a.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report %s: %w", name, err)
	}
	return name, nil
}

// List returns the archived reports, newest first. An empty family lists every family.
func (a *Archive) List(ctx context.Context, family string) ([]ReportInfo, error) {
	prefix := a.scope()
	if family != "" {
		prefix += family + "/"
	}

	var out []ReportInfo
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list reports: %w", obj.Err)
		}
		if !strings.HasSuffix(obj.Key, ".json") {
			continue
		}
		out = append(out, ReportInfo{Name: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastModified.After(out[j].LastModified) })
	return out, nil
}

// Get downloads and decodes the report stored under name.
func (a *Archive) Get(ctx context.Context, name string) (*RunReport, error) {
	if err := a.checkName(name); err != nil {
		return nil, err
	}
	obj, err := a.client.GetObject(ctx, a.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch report %s: %w", name, err)
	}
	defer obj.Close()

	var report RunReport
	if err := json.NewDecoder(obj).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", name, err)
	}
	return &report, nil
}

// Delete removes the report stored under name.
func (a *Archive) Delete(ctx context.Context, name string) error {
	if err := a.checkName(name); err != nil {
		return err
	}
	if err := a.client.RemoveObject(ctx, a.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete report %s: %w", name, err)
	}
	return nil
}

// scope is the object name prefix of every report, empty when the archive has no prefix.
func (a *Archive) scope() string {
	if a.prefix == "" {
		return ""
	}
	return a.prefix + "/"
}

func (a *Archive) checkName(name string) error {
	if !strings.HasPrefix(name, a.scope()) || strings.HasPrefix(name, "/") || !strings.HasSuffix(name, ".json") || strings.Contains(name, "..") {
		return fmt.Errorf("invalid report name %q", name)
	}
	return nil
}
