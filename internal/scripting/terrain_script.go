package scripting

import (
	"context"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/tavern/internal/game/geom"
	"github.com/cory-johannsen/tavern/internal/game/terrain"
)

// Hook names a terrain script may define.
const (
	AltHook  = "alt"
	TempHook = "temp"
)

// TerrainScript is a terrain.Sampler backed by a Lua script defining
// alt(x, y) and optionally temp(x, y).
//
// TerrainScript is safe for concurrent use; calls are serialised on the
// single LState. Lua runtime errors are logged at Warn level and the
// fallback sampler answers instead.
type TerrainScript struct {
	mu       sync.Mutex
	L        *lua.LState
	cancel   context.CancelFunc
	limit    int
	fallback terrain.Sampler
	logger   *zap.Logger
	source   string
}

// LoadTerrainScript creates a sandboxed VM and executes the script at path.
//
// Precondition: fallback and logger must be non-nil.
// Postcondition: Returns a ready sampler, or an error if the file fails to
// load or does not define alt.
func LoadTerrainScript(path string, instLimit int, fallback terrain.Sampler, logger *zap.Logger) (*TerrainScript, error) {
	return loadTerrain(path, instLimit, fallback, logger, func(L *lua.LState) error { return L.DoFile(path) })
}

// LoadTerrainString is LoadTerrainScript over inline source.
func LoadTerrainString(src string, instLimit int, fallback terrain.Sampler, logger *zap.Logger) (*TerrainScript, error) {
	return loadTerrain("<inline>", instLimit, fallback, logger, func(L *lua.LState) error { return L.DoString(src) })
}

func loadTerrain(name string, instLimit int, fallback terrain.Sampler, logger *zap.Logger, run func(*lua.LState) error) (*TerrainScript, error) {
	L, cancel := NewSandboxedState(instLimit)
	if err := run(L); err != nil {
		cancel()
		L.Close()
		return nil, fmt.Errorf("scripting: loading %q: %w", name, err)
	}
	if _, ok := L.GetGlobal(AltHook).(*lua.LFunction); !ok {
		cancel()
		L.Close()
		return nil, fmt.Errorf("scripting: %q does not define %s(x, y)", name, AltHook)
	}
	return &TerrainScript{
		L:        L,
		cancel:   cancel,
		limit:    instLimit,
		fallback: fallback,
		logger:   logger,
		source:   name,
	}, nil
}

// Close releases the VM.
func (s *TerrainScript) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancel()
	s.L.Close()
}

// AltApprox calls alt(x, y).
func (s *TerrainScript) AltApprox(wpos geom.Vec2) float64 {
	if v, ok := s.call(AltHook, wpos); ok {
		return v
	}
	return s.fallback.AltApprox(wpos)
}

// Temperature calls temp(x, y), or the fallback when temp is undefined.
func (s *TerrainScript) Temperature(wpos geom.Vec2) float64 {
	if v, ok := s.call(TempHook, wpos); ok {
		return v
	}
	return s.fallback.Temperature(wpos)
}

// call invokes hook with a fresh instruction budget.
//
// Postcondition: ok is false when the hook is undefined, errors, or returns a
// non-number, a non-finite number, or one beyond terrain.MaxAlt.
func (s *TerrainScript) call(hook string, wpos geom.Vec2) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn := s.L.GetGlobal(hook)
	if fn == lua.LNil {
		return 0, false
	}

	s.cancel()
	s.cancel = armLimit(s.L, s.limit)

	if err := s.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(wpos.X), lua.LNumber(wpos.Y)); err != nil {
		s.logger.Warn("scripting: Lua runtime error",
			zap.String("script", s.source),
			zap.String("hook", hook),
			zap.Stringer("wpos", wpos),
			zap.Error(err),
		)
		return 0, false
	}

	ret := s.L.Get(-1)
	s.L.Pop(1)
	n, ok := ret.(lua.LNumber)
	if !ok {
		s.logger.Warn("scripting: hook returned non-number",
			zap.String("script", s.source),
			zap.String("hook", hook),
			zap.String("type", ret.Type().String()),
		)
		return 0, false
	}
	v := float64(n)
	if !terrain.AltInRange(v) {
		s.logger.Warn("scripting: hook returned out-of-range number",
			zap.String("script", s.source),
			zap.String("hook", hook),
			zap.Float64("value", v),
		)
		return 0, false
	}
	return v, true
}
