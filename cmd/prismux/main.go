// Command prismux demuxes an MPEG-TS program read from stdin with
// internal/mpegts and re-muxes it into an ISDB-Tb-profiled MPEG-TS
// program pushed over SRT, using internal/mux as the encode-side
// counterpart of internal/mpegts and internal/demux.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	srtgo "github.com/zsiec/srtgo"
	"golang.org/x/sync/errgroup"

	"github.com/zsiec/isdbmux/internal/demux"
	"github.com/zsiec/isdbmux/internal/mpegts"
	"github.com/zsiec/isdbmux/internal/mux"
)

func main() {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(); err != nil {
		slog.Error("prismux exiting", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	addr := envOr("SRT_PUSH_ADDR", "127.0.0.1:6001")
	streamID := envOr("SRT_STREAM_ID", "live/prismux")

	cfg := srtgo.DefaultConfig()
	cfg.StreamID = streamID

	slog.Info("dialing SRT push target", "address", addr, "stream_id", streamID)
	conn, err := srtgo.Dial(addr, cfg)
	if err != nil {
		return fmt.Errorf("prismux: dialing %s: %w", addr, err)
	}
	defer conn.Close()

	sink := mux.NewCountingSink(conn)
	muxCfg := mux.Config{
		TransportStreamID: 1,
		OriginalNetworkID: 1,
		ServiceID:         1,
		MuxRate:           mux.VBRMuxRate,
		PATPeriodSeconds:  0.1,
		SDTPeriodSeconds:  1.0,
		NowFunc:           time.Now,
		Topology:          mux.TopologyConfig{Profile: mux.ProfileDefault},
	}

	m, err := mux.NewMuxer(slog.Default(), sink, muxCfg)
	if err != nil {
		return fmt.Errorf("prismux: creating muxer: %w", err)
	}

	videoIdx, err := m.AddStream(mux.StreamDesc{Kind: mux.MediaVideoH264})
	if err != nil {
		return fmt.Errorf("prismux: adding video stream: %w", err)
	}
	audioIdx, err := m.AddStream(mux.StreamDesc{Kind: mux.MediaAudioAAC, Language: "por"})
	if err != nil {
		return fmt.Errorf("prismux: adding audio stream: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return feedFromStdin(ctx, m, videoIdx, audioIdx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return m.Close()
}

// Elementary stream_type values this bridge recognizes in the inbound
// PMT (ISO/IEC 13818-1 Table 2-34).
const (
	streamTypeH264 = 0x1B
	streamTypeAAC  = 0x0F
)

// feedFromStdin demuxes an inbound MPEG-TS program read from stdin with
// internal/mpegts (prism's existing decode-side parser) and re-muxes its
// H.264 video and AAC audio elementary streams through m, internal/mux's
// ISDB-Tb encode-side counterpart. This is what makes cmd/prismux a real
// remux-and-push bridge rather than a bare SRT socket exerciser.
func feedFromStdin(ctx context.Context, m *mux.Muxer, videoIdx, audioIdx int) error {
	d := mpegts.NewDemuxer(ctx, os.Stdin, mpegts.DemuxerOptPacketSize(188))

	var videoPID, audioPID uint16
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := d.NextData()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("prismux: demuxing stdin: %w", err)
		}

		switch {
		case data.PMT != nil:
			for _, es := range data.PMT.ElementaryStreams {
				switch es.StreamType {
				case streamTypeH264:
					videoPID = es.ElementaryPID
				case streamTypeAAC:
					audioPID = es.ElementaryPID
				}
			}
		case data.PES != nil:
			pid := data.FirstPacket.Header.PID
			pts, dts := pesTimestamps(data.PES.Header)
			switch pid {
			case videoPID:
				err = feedVideo(m, videoIdx, data.PES.Data, pts, dts)
			case audioPID:
				err = m.AddPacket(mux.Packet{
					StreamIndex: audioIdx,
					Data:        data.PES.Data,
					PTS:         pts,
					DTS:         dts,
					KeyFrame:    true,
				})
			}
			if err != nil {
				return fmt.Errorf("prismux: muxing packet: %w", err)
			}
		}
	}
}

// feedVideo scans an H.264 access unit for an IDR slice (internal/demux's
// Annex-B NAL scanner, the same one internal/mux's preprocessor assumes)
// so the muxer knows to force a PAT/PMT/key-frame PCR ahead of it.
func feedVideo(m *mux.Muxer, videoIdx int, data []byte, pts, dts int64) error {
	keyFrame := false
	for _, nal := range demux.ParseAnnexB(data) {
		if demux.IsKeyframe(nal.Type) {
			keyFrame = true
			break
		}
	}
	return m.AddPacket(mux.Packet{
		StreamIndex: videoIdx,
		Data:        data,
		PTS:         pts,
		DTS:         dts,
		KeyFrame:    keyFrame,
	})
}

// pesTimestamps extracts PTS/DTS from a parsed PES header, defaulting to
// mux.NoTimestamp when absent and falling back DTS to PTS when the PES
// carries only a presentation timestamp.
func pesTimestamps(h *mpegts.PESHeader) (pts, dts int64) {
	pts, dts = mux.NoTimestamp, mux.NoTimestamp
	if h == nil || h.OptionalHeader == nil {
		return pts, dts
	}
	if h.OptionalHeader.PTS != nil {
		pts = h.OptionalHeader.PTS.Base
	}
	dts = pts
	if h.OptionalHeader.DTS != nil {
		dts = h.OptionalHeader.DTS.Base
	}
	return pts, dts
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
