package randfile_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/vinicius-lino-figueiredo/randfile"
	"github.com/vinicius-lino-figueiredo/randfile/pkg/bytesize"
)

type discardSink struct{}

func (discardSink) Write(p []byte) (int, error) { return len(p), nil }

func (discardSink) Close() error { return nil }

func BenchmarkWrite(b *testing.B) {
	ctx := context.Background()
	const total = 16 * bytesize.MiB

	chunks := [...]bytesize.Size{4 * bytesize.KiB, 64 * bytesize.KiB, bytesize.MiB, 16 * bytesize.MiB}

	for _, kind := range []string{randfile.SourceFast, randfile.SourceCrypto} {
		entropy, _ := randfile.NewEntropy(kind)
		for _, chunk := range chunks {
			b.Run(fmt.Sprintf("source=%s/chunk=%s", kind, chunk), func(b *testing.B) {
				src, _ := entropy()
				w := randfile.NewWriter(randfile.WithEntropy(src))
				b.SetBytes(int64(total))

				for b.Loop() {
					_, err := w.Write(ctx, randfile.WriteJob{
						TotalSize:   int64(total),
						ChunkSize:   int64(chunk),
						Destination: discardSink{},
					})
					if err != nil {
						b.FailNow()
					}
				}
			})
		}
	}
}

func BenchmarkBatch(b *testing.B) {
	ctx := context.Background()
	const size = 256 * bytesize.KiB

	for _, jobs := range [...]int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("jobs=%d", jobs), func(b *testing.B) {
			dir := filepath.Join(b.TempDir(), "out")
			batch := randfile.NewBatch(randfile.WithJobs(jobs))

			const files = 16
			for b.Loop() {
				_, err := batch.Run(ctx, randfile.BatchJob{
					Count:     files,
					TotalSize: int64(size),
					ChunkSize: int64(64 * bytesize.KiB),
					Directory: dir,
				})
				if err != nil {
					b.FailNow()
				}
				b.StopTimer()
				_ = os.RemoveAll(dir)
				b.StartTimer()
			}

			perFile := float64(b.Elapsed().Nanoseconds()) / float64(b.N*files)
			b.ReportMetric(perFile, "ns/file")
		})
	}
}

// Reading entropy alone, without the cost of the sink.
func BenchmarkEntropy(b *testing.B) {
	buf := make([]byte, bytesize.MiB)
	for _, kind := range []string{randfile.SourceFast, randfile.SourceCrypto} {
		b.Run("source="+kind, func(b *testing.B) {
			entropy, _ := randfile.NewEntropy(kind)
			src, _ := entropy()
			b.SetBytes(int64(len(buf)))
			for b.Loop() {
				if _, err := io.ReadFull(src, buf); err != nil {
					b.FailNow()
				}
			}
		})
	}
}
