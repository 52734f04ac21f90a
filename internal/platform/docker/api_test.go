package docker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// fakeLister implements ContainerLister without a daemon.
type fakeLister struct {
	summaries []container.Summary
	err       error
	gotLabel  string
}

func (f *fakeLister) ContainerList(_ context.Context, options container.ListOptions) ([]container.Summary, error) {
	if labels := options.Filters.Get("label"); len(labels) > 0 {
		f.gotLabel = labels[0]
	}
	return f.summaries, f.err
}

var _ = Describe("API discoverer", func() {

	It("strips the leading slash from container names", func() {
		fake := &fakeLister{summaries: []container.Summary{
			{ID: "0123456789abcdef", Names: []string{"/clab-srl-srl1"}, State: "running", Status: "Up 5 minutes"},
		}}

		containers, err := NewAPIDiscovererWithClient(fake).Discover(context.Background(), "containerlab=srl")
		Expect(err).NotTo(HaveOccurred())
		Expect(containers).To(ConsistOf(
			Container{Name: "clab-srl-srl1", State: "running", Status: "Up 5 minutes"},
		))
	})

	It("falls back to the short ID when names are missing", func() {
		fake := &fakeLister{summaries: []container.Summary{
			{ID: "0123456789abcdef", State: "running"},
		}}

		containers, err := NewAPIDiscovererWithClient(fake).Discover(context.Background(), "containerlab=srl")
		Expect(err).NotTo(HaveOccurred())
		Expect(containers).To(HaveLen(1))
		Expect(containers[0].Name).To(Equal("0123456789ab"))
	})

	It("sorts containers by name", func() {
		fake := &fakeLister{summaries: []container.Summary{
			{Names: []string{"/clab-srl-srl2"}},
			{Names: []string{"/clab-srl-srl1"}},
		}}

		containers, err := NewAPIDiscovererWithClient(fake).Discover(context.Background(), "containerlab=srl")
		Expect(err).NotTo(HaveOccurred())
		Expect(containers[0].Name).To(Equal("clab-srl-srl1"))
		Expect(containers[1].Name).To(Equal("clab-srl-srl2"))
	})

	It("passes the label selector to the API", func() {
		fake := &fakeLister{}

		_, err := NewAPIDiscovererWithClient(fake).Discover(context.Background(), "containerlab=srl")
		Expect(err).NotTo(HaveOccurred())
		Expect(fake.gotLabel).To(Equal("containerlab=srl"))
	})

	It("propagates API errors", func() {
		fake := &fakeLister{err: context.DeadlineExceeded}

		_, err := NewAPIDiscovererWithClient(fake).Discover(context.Background(), "containerlab=srl")
		Expect(err).To(MatchError(ContainSubstring("failed to list containers")))
	})

	It("lists containers over HTTP", NodeTimeout(10*time.Second), func(ctx context.Context) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasSuffix(r.URL.Path, "/containers/json") {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode([]container.Summary{
				{ID: "0123456789abcdef", Names: []string{"/clab-srl-srl1"}, State: "running", Status: "Up 2 minutes"},
			})
		}))
		defer srv.Close()

		// a fixed API version skips the version negotiation ping
		cli, err := client.NewClientWithOpts(
			client.WithHost(strings.Replace(srv.URL, "http://", "tcp://", 1)),
			client.WithVersion("1.44"),
			client.WithHTTPClient(srv.Client()),
		)
		Expect(err).NotTo(HaveOccurred())
		defer cli.Close()

		containers, err := NewAPIDiscovererWithClient(cli).Discover(ctx, "containerlab=srl")
		Expect(err).NotTo(HaveOccurred())
		Expect(containers).To(ConsistOf(
			Container{Name: "clab-srl-srl1", State: "running", Status: "Up 2 minutes"},
		))
	})

})
