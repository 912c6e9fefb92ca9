package tokenizer

import (
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/NikshetSteh/bert-tokenizer/encoding"
	"github.com/NikshetSteh/bert-tokenizer/vocab"
)

const (
	// parallelThreshold is the batch size below which parallel dispatch
	// overhead dominates and EncodeBatchParallel falls back to sequential.
	parallelThreshold = 16
	// maxParallelChunks bounds the number of workers.
	maxParallelChunks = 4
	// minItemsPerChunk keeps workers from being starved by tiny chunks.
	minItemsPerChunk = 8
)

// EncodeBatch encodes every text independently with per-call padding and
// truncation disabled, then applies batch-level truncation per item and
// batch-level padding to either the configured fixed length or the longest
// item in the whole batch.
func (t *Tokenizer) EncodeBatch(texts []string) []*encoding.Encoding {
	bare := t.WithNoPadding().WithNoTruncation()
	encs := make([]*encoding.Encoding, len(texts))
	for i, text := range texts {
		encs[i] = bare.Encode(text)
	}
	return t.finishBatch(encs)
}

// EncodeBatchParallel behaves exactly like EncodeBatch but splits large
// batches across workers. Each worker rebuilds its own private Vocabulary
// from the serialized token list, so workers share no mutable state; a
// worker failure fails the whole call. Results keep batch order, and the
// batch-level padding and truncation are applied once after all chunks are
// merged, never per chunk.
func (t *Tokenizer) EncodeBatchParallel(texts []string) ([]*encoding.Encoding, error) {
	chunks := t.chunkCount(len(texts))
	if chunks < 2 {
		return t.EncodeBatch(texts), nil
	}
	klog.V(2).Infof("tokenizer: encoding batch of %d texts in %d chunks", len(texts), chunks)

	tokens := t.vocab.Tokens()
	cfg := t.config
	results := make([][]*encoding.Encoding, chunks)

	var g errgroup.Group
	for c := 0; c < chunks; c++ {
		lo := c * len(texts) / chunks
		hi := (c + 1) * len(texts) / chunks
		chunk := texts[lo:hi]
		c := c
		g.Go(func() error {
			v, err := vocab.NewWithMarker(tokens, cfg.ContinuationMarker)
			if err != nil {
				return errors.Wrapf(err, "rebuilding vocabulary for batch chunk %d", c)
			}
			worker := New(v).WithConfig(cfg)
			out := make([]*encoding.Encoding, len(chunk))
			for i, text := range chunk {
				out[i] = worker.Encode(text)
			}
			results[c] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	encs := make([]*encoding.Encoding, 0, len(texts))
	for _, part := range results {
		encs = append(encs, part...)
	}
	return t.finishBatch(encs), nil
}

// chunkCount picks the number of contiguous chunks for a batch of n items:
// one below the parallel threshold, otherwise bounded by maxParallelChunks
// above and by minItemsPerChunk below.
func (t *Tokenizer) chunkCount(n int) int {
	if n < parallelThreshold {
		return 1
	}
	chunks := n / minItemsPerChunk
	if chunks > maxParallelChunks {
		chunks = maxParallelChunks
	}
	return chunks
}

// finishBatch applies batch-level truncation and padding. The padding
// target is the configured fixed length or the longest item across the
// whole batch, snapped up to the configured multiple.
func (t *Tokenizer) finishBatch(encs []*encoding.Encoding) []*encoding.Encoding {
	if t.truncation != nil {
		for i := range encs {
			encs[i] = encs[i].Truncate(t.truncation.MaxLength, t.truncation.Direction)
		}
	}
	if t.padding == nil {
		return encs
	}
	target := t.padding.Length
	if target == 0 {
		for _, enc := range encs {
			if enc.Len() > target {
				target = enc.Len()
			}
		}
	}
	if m := t.padding.ToMultipleOf; m > 0 && target%m != 0 {
		target = (target/m + 1) * m
	}
	for i := range encs {
		encs[i] = encs[i].Pad(target, t.vocab.PadID(), t.padToken, t.padding.Direction)
	}
	return encs
}
