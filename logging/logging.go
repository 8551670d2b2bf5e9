// Copyright 2026 The nbodykit Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logging configures the process-wide log stream through the
// go-logging library.
//
// Setup attaches a single sink that prefixes every line with the wall-clock
// offset since the first Setup call and the process's world rank:
//
//	[ 000000.43 ]   0: 06-28 14:49  measurestats    INFO     Nproc = [2, 1, 1]
//	[ 000000.43 ]   0: 06-28 14:49  measurestats    INFO     Rmax = 120
//
// Repeated Setup calls adjust the level of that one sink in place; a log
// event is never rendered twice no matter how often the process
// reconfigures.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	gol "github.com/op/go-logging"

	"github.com/caoxiaoyue/nbodykit/comm"
)

// levels maps the accepted Setup arguments, case-sensitively. Nothing else
// is recognized.
var levels = map[string]gol.Level{
	"info":    gol.INFO,
	"debug":   gol.DEBUG,
	"warning": gol.WARNING,
}

// UnrecognizedLevelError reports a Setup level outside {info, debug,
// warning}.
type UnrecognizedLevelError struct {
	Level string
}

func (e *UnrecognizedLevelError) Error() string {
	return fmt.Sprintf("logging: unrecognized level %q", e.Level)
}

// sink is the one backend attached to the process-wide logger. Its level
// and output are mutated in place on reconfiguration; it is never attached
// twice.
type sink struct {
	out   io.Writer
	level gol.Level
	start time.Time // first Setup call, origin of the elapsed field
	rank  int       // world rank, captured at attach time
}

func (s *sink) Log(level gol.Level, calldepth int, rec *gol.Record) error {
	// The timestamp carries a trailing space, putting two spaces before the
	// logger name.
	_, err := fmt.Fprintf(s.out, "[ %09.2f ] % 3d: %s %-15s %-8s %s\n",
		rec.Time.Sub(s.start).Seconds(), s.rank,
		rec.Time.Format("01-02 15:04 "), rec.Module, rec.Level, rec.Message())
	return err
}

func (s *sink) GetLevel(string) gol.Level { return s.level }

func (s *sink) SetLevel(level gol.Level, _ string) { s.level = level }

func (s *sink) IsEnabledFor(level gol.Level, _ string) bool { return level <= s.level }

// handler is nil until the first successful Setup.
var handler *sink

// Setup turns on logging at the given level, one of "info", "debug" or
// "warning"; anything else returns an *UnrecognizedLevelError and leaves
// any previously attached sink untouched.
//
// The first successful call creates the sink, starts the elapsed-time
// origin, and attaches it to the process-wide logger; later calls only
// replace the level of the existing sink.
func Setup(level string) error {
	lvl, ok := levels[level]
	if !ok {
		return &UnrecognizedLevelError{Level: level}
	}
	if handler == nil {
		handler = &sink{
			out:   os.Stderr,
			start: time.Now(),
			rank:  comm.World().Rank(),
		}
		gol.SetBackend(handler)
	}
	handler.level = lvl
	return nil
}
