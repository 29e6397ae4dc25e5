// SPDX-License-Identifier: EPL-2.0

// Package playback streams an audio.Source to a sound device.
//
// A Player pulls interleaved buffers from the source and writes them to a
// Sink, checking for context cancellation between buffers. PortAudio is the
// Sink used in production:
//
//	sink, err := playback.OpenPortAudio()
//	if err != nil {
//	    return err
//	}
//	defer sink.Close()
//
//	p := playback.New(sink, logger)
//	err = p.Play(ctx, samples.Source())
//
// A source with more channels than the device accepts is rejected with
// audio.ErrUnsupportedFormat.
package playback
