package artifacts

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/segmenter/internal/features"
	"github.com/JaimeStill/segmenter/pkg/formatting"
	"github.com/JaimeStill/segmenter/pkg/storage"
)

// Bundle is a loaded, validated artifact set with the schema it was fitted on.
type Bundle struct {
	Manifest *Manifest
	Schema   features.Schema
	Pipeline *Pipeline
}

// Load reads the manifest at manifestKey, fetches its three artifacts
// concurrently, and validates the chain end to end: schema length, stage
// dimensions, recorded feature names, and the declared cluster count.
func Load(ctx context.Context, store storage.System, manifestKey string, logger *slog.Logger) (*Bundle, error) {
	if manifestKey == "" {
		manifestKey = DefaultManifestKey
	}
	logger = logger.With("bundle", store.Location())

	manifest, err := readManifest(ctx, store, manifestKey)
	if err != nil {
		return nil, err
	}

	schema, err := manifest.Schema()
	if err != nil {
		return nil, err
	}

	keys := manifest.ResolveKeys(manifestKey)

	var (
		scaler    *Scaler
		reducer   *PCA
		clusterer *KMeans
	)

	g, gctx := errgroup.WithContext(ctx)
	fetch := func(key string, decode func([]byte) error) {
		g.Go(func() error {
			data, err := storage.ReadAll(gctx, store, key)
			if err != nil {
				return fmt.Errorf("read artifact %s: %w", key, err)
			}
			if err := decode(data); err != nil {
				return fmt.Errorf("artifact %s: %w", key, err)
			}
			logger.Debug("artifact loaded", "key", key, "size", formatting.FormatBytes(int64(len(data)), 1))
			return nil
		})
	}

	fetch(keys.Scaler, func(b []byte) (err error) {
		scaler, err = DecodeScaler(b)
		return err
	})
	fetch(keys.Reducer, func(b []byte) (err error) {
		reducer, err = DecodePCA(b)
		return err
	})
	fetch(keys.Clusterer, func(b []byte) (err error) {
		clusterer, err = DecodeKMeans(b)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if schema.Len() != scaler.InputDims() {
		return nil, fmt.Errorf("%w: schema lists %d features, scaler expects %d",
			ErrChainMismatch, schema.Len(), scaler.InputDims())
	}
	if names := scaler.FeatureNames(); len(names) > 0 && !slices.Equal(names, schema.Keys()) {
		return nil, fmt.Errorf("%w: scaler was fitted on %v, schema orders %v",
			ErrChainMismatch, names, schema.Keys())
	}

	pipeline, err := NewPipeline(scaler, reducer, clusterer)
	if err != nil {
		return nil, err
	}

	if manifest.Clusters > 0 && manifest.Clusters != pipeline.Clusters() {
		return nil, fmt.Errorf("%w: manifest declares %d clusters, clusterer has %d",
			ErrChainMismatch, manifest.Clusters, pipeline.Clusters())
	}

	logger.Info(
		"artifact bundle loaded",
		"name", manifest.Name,
		"version", manifest.Version,
		"features", schema.Len(),
		"components", reducer.OutputDims(),
		"clusters", pipeline.Clusters(),
	)

	return &Bundle{
		Manifest: manifest,
		Schema:   schema,
		Pipeline: pipeline,
	}, nil
}

// Missing reads the manifest at manifestKey and reports which of its artifact
// keys do not exist in store, in scaler, reducer, clusterer order.
func Missing(ctx context.Context, store storage.System, manifestKey string) (*Manifest, []string, error) {
	if manifestKey == "" {
		manifestKey = DefaultManifestKey
	}

	manifest, err := readManifest(ctx, store, manifestKey)
	if err != nil {
		return nil, nil, err
	}

	var missing []string
	for _, key := range manifest.ResolveKeys(manifestKey).List() {
		ok, err := store.Exists(ctx, key)
		if err != nil {
			return nil, nil, fmt.Errorf("check artifact %s: %w", key, err)
		}
		if !ok {
			missing = append(missing, key)
		}
	}
	return manifest, missing, nil
}

func readManifest(ctx context.Context, store storage.System, manifestKey string) (*Manifest, error) {
	raw, err := storage.ReadAll(ctx, store, manifestKey)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", manifestKey, err)
	}
	return ParseManifest(raw)
}
