package scripting

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/l1jgo/spawnd/internal/component"
	"github.com/l1jgo/spawnd/internal/data"
	"github.com/l1jgo/spawnd/internal/item"
	"github.com/l1jgo/spawnd/internal/world"
)

// Engine wraps a single gopher-lua VM whose scripts request spawns.
// Single-goroutine access only (the script system).
type Engine struct {
	vm     *lua.LState
	log    *zap.Logger
	world  *world.State
	items  *data.ItemTable
	loot   *data.LootTables
	rng    *rand.Rand
	failed int
}

// NewEngine creates a Lua engine bound to the world's spawner and loads
// every .lua file in scriptsDir in name order. A missing directory loads
// nothing. loot may be nil, in which case spawn_loot always spawns nothing.
func NewEngine(scriptsDir string, ws *world.State, items *data.ItemTable, loot *data.LootTables, log *zap.Logger) (*Engine, error) {
	e := newEngine(ws, items, loot, rand.New(rand.NewSource(time.Now().UnixNano())), log)
	if err := e.loadDir(scriptsDir); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

func newEngine(ws *world.State, items *data.ItemTable, loot *data.LootTables, rng *rand.Rand, log *zap.Logger) *Engine {
	vm := lua.NewState()
	e := &Engine{vm: vm, log: log, world: ws, items: items, loot: loot, rng: rng}

	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	vm.SetGlobal("spawn_item", vm.NewFunction(e.luaSpawnItem))
	vm.SetGlobal("spawn_loot", vm.NewFunction(e.luaSpawnLoot))
	vm.SetGlobal("items_near", vm.NewFunction(e.luaItemsNear))
	vm.SetGlobal("log_info", vm.NewFunction(e.luaLogInfo))
	return e
}

func (e *Engine) Close() {
	e.vm.Close()
}

// DoString runs a chunk of Lua in the engine's VM.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}

// Failures returns how many on_tick calls raised a Lua error.
func (e *Engine) Failures() int { return e.failed }

func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// OnTick calls the Lua global on_tick(tick) if a script defined it.
// Errors are logged; the tick continues.
func (e *Engine) OnTick(tick uint64) {
	fn := e.vm.GetGlobal("on_tick")
	if fn == lua.LNil {
		return
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, lua.LNumber(tick)); err != nil {
		e.failed++
		e.log.Error("lua on_tick error", zap.Uint64("tick", tick), zap.Error(err))
	}
}

// spawn_item(x, y, z, vx, vy, vz, item_name, count) -> bool
func (e *Engine) luaSpawnItem(L *lua.LState) int {
	pos := component.Vec3{
		X: float64(L.CheckNumber(1)),
		Y: float64(L.CheckNumber(2)),
		Z: float64(L.CheckNumber(3)),
	}
	vel := component.Vec3{
		X: float64(L.CheckNumber(4)),
		Y: float64(L.CheckNumber(5)),
		Z: float64(L.CheckNumber(6)),
	}
	name := L.CheckString(7)
	count := L.OptInt(8, 1)

	info := e.items.ByName(name)
	if info == nil {
		e.log.Warn("lua spawn_item: unknown item", zap.String("item", name))
		L.Push(lua.LFalse)
		return 1
	}
	if count < 1 || count > int(info.MaxStack) {
		e.log.Warn("lua spawn_item: bad count",
			zap.String("item", name),
			zap.Int("count", count),
			zap.Uint8("max_stack", info.MaxStack),
		)
		L.Push(lua.LFalse)
		return 1
	}
	if !pos.Finite() || !vel.Finite() {
		L.ArgError(1, "non-finite position or velocity")
		return 0
	}

	e.world.Spawner.SpawnItem(pos, vel, item.NewStack(info.ID, uint8(count)))
	L.Push(lua.LTrue)
	return 1
}

// spawn_loot(x, y, z, table) -> number of stacks queued
// Each stack gets a small random pop so drops scatter.
func (e *Engine) luaSpawnLoot(L *lua.LState) int {
	pos := component.Vec3{
		X: float64(L.CheckNumber(1)),
		Y: float64(L.CheckNumber(2)),
		Z: float64(L.CheckNumber(3)),
	}
	name := L.CheckString(4)
	if !pos.Finite() {
		L.ArgError(1, "non-finite position")
		return 0
	}
	if e.loot == nil || e.loot.Get(name) == nil {
		e.log.Warn("lua spawn_loot: unknown table", zap.String("table", name))
		L.Push(lua.LNumber(0))
		return 1
	}
	stacks := e.loot.Roll(name, e.rng)
	for _, st := range stacks {
		vel := component.Vec3{
			X: (e.rng.Float64() - 0.5) * 2,
			Y: 4,
			Z: (e.rng.Float64() - 0.5) * 2,
		}
		e.world.Spawner.SpawnItem(pos, vel, st)
	}
	L.Push(lua.LNumber(len(stacks)))
	return 1
}

// items_near(x, z) -> number of item entities in the surrounding chunks.
// Sees entities spawned up to the previous tick.
func (e *Engine) luaItemsNear(L *lua.LState) int {
	p := component.Vec3{X: float64(L.CheckNumber(1)), Z: float64(L.CheckNumber(2))}
	n := 0
	for _, id := range e.world.Chunks.Nearby(p) {
		if e.world.ItemMarkers.Has(id) {
			n++
		}
	}
	L.Push(lua.LNumber(n))
	return 1
}

func (e *Engine) luaLogInfo(L *lua.LState) int {
	e.log.Info("lua", zap.String("msg", L.CheckString(1)))
	return 0
}
