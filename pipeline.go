package multicolor

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"
)

// DefaultWorkers is the number of concurrent conversions used by Build when
// none is given
const DefaultWorkers = 4

func (c *Converter) queueJobs(ctx context.Context, jobs []*Job) (<-chan *Job, <-chan error, error) {
	out := make(chan *Job)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for _, j := range jobs {
			select {
			case out <- j:
			case <-ctx.Done():
				errc <- errors.New("build cancelled")
				return
			}
		}
	}()
	return out, errc, nil
}

func (c *Converter) jobWorker(ctx context.Context, in <-chan *Job) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for j := range in {
			if ctx.Err() != nil {
				return
			}

			b, err := c.Convert(j)
			if err != nil {
				errc <- err
				return
			}

			if err := os.MkdirAll(filepath.Dir(j.Output), 0755); err != nil {
				errc <- err
				return
			}

			if err := ioutil.WriteFile(j.Output, b, 0644); err != nil {
				errc <- err
				return
			}

			c.logger.Printf("Wrote \"%s\" (%d bytes)\n", j.Output, len(b))
		}
	}()
	return errc, nil
}

func waitForPipeline(cancel context.CancelFunc, errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	var first error
	for err := range errc {
		if err != nil && first == nil {
			// Stop queueing, the remaining workers drain what they hold
			first = err
			cancel()
		}
	}
	return first
}

// mergeErrors fans in the error channels of every pipeline stage, the
// returned channel is closed once all of them are
func mergeErrors(cs ...<-chan error) <-chan error {
	out := make(chan error, len(cs))

	var wg sync.WaitGroup
	forward := func(c <-chan error) {
		defer wg.Done()
		for err := range c {
			out <- err
		}
	}

	wg.Add(len(cs))
	for _, c := range cs {
		go forward(c)
	}

	go func() {
		defer close(out)
		wg.Wait()
	}()

	return out
}

// Build converts every job listed in the manifest using the given number of
// concurrent workers, writing each output file once its conversion has
// succeeded.
func (c *Converter) Build(manifest string, workers int) error {
	jobs, err := LoadManifest(manifest)
	if err != nil {
		return err
	}

	for _, j := range jobs {
		if err := j.Validate(); err != nil {
			return err
		}
	}

	if workers < 1 {
		workers = DefaultWorkers
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	queue, errc, err := c.queueJobs(ctx, jobs)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < workers; i++ {
		errc, err := c.jobWorker(ctx, queue)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(cancelFunc, errcList...)
}
