package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/ironkeep/ecs"
	"github.com/milk9111/ironkeep/ecs/component"
	"github.com/milk9111/ironkeep/prefabs"
)

// enemyScript is one enemy's compiled copy of its behavior script plus the
// script-owned state map.
type enemyScript struct {
	path        string
	compiled    *tengo.Compiled
	stateData   *tengo.Map
	current     string
	pending     string
	initialized bool
}

const scriptLifecycleDispatch = `
if __phase == "enter" {
	onEnter(__engine, __state, __current_state)
} else if __phase == "update" {
	update(__engine, __state, __current_state)
} else if __phase == "exit" {
	onExit(__engine, __state, __current_state)
}
`

// scriptedBehavior drives an enemy from a tengo state machine. A script that
// fails to load or run is disabled for that enemy and the native melee
// behavior takes over.
type scriptedBehavior struct {
	sys *EnemyBehaviorSystem
}

func (b scriptedBehavior) Special(ctx *EnemyContext) bool {
	if ctx.Enemy.ScriptFailed || ctx.Enemy.Script == "" {
		return false
	}
	if err := b.sys.runScript(ctx); err != nil {
		ctx.Enemy.ScriptFailed = true
		delete(b.sys.scripts, ctx.Entity)
		ctx.World.Logger().Warn().Err(err).Str("script", ctx.Enemy.Script).Str("entity", ctx.Entity.String()).Msg("enemy script disabled")
		return false
	}
	return true
}

func (scriptedBehavior) Chase(ctx *EnemyContext)  { meleeBehavior{}.Chase(ctx) }
func (scriptedBehavior) Attack(ctx *EnemyContext) { meleeBehavior{}.Attack(ctx) }

func (s *EnemyBehaviorSystem) runScript(ctx *EnemyContext) error {
	rt, err := s.scriptRuntime(ctx.Entity, ctx.Enemy.Script)
	if err != nil {
		return err
	}
	engine := buildEnemyScriptEngine(ctx, rt)
	if !rt.initialized {
		if err := rt.runPhase("enter", engine); err != nil {
			return fmt.Errorf("onEnter: %w", err)
		}
		rt.initialized = true
	}
	if err := rt.runPhase("update", engine); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	if rt.pending == "" || rt.pending == rt.current {
		rt.pending = ""
		return nil
	}
	if err := rt.runPhase("exit", engine); err != nil {
		return fmt.Errorf("onExit: %w", err)
	}
	rt.current = rt.pending
	rt.pending = ""
	if err := rt.runPhase("enter", engine); err != nil {
		return fmt.Errorf("onEnter: %w", err)
	}
	return nil
}

func (s *EnemyBehaviorSystem) scriptRuntime(ent ecs.Entity, path string) (*enemyScript, error) {
	if rt, ok := s.scripts[ent]; ok && rt != nil && rt.path == path {
		return rt, nil
	}
	base, ok := s.compiled[path]
	if !ok {
		src, err := prefabs.LoadScript(path)
		if err != nil {
			return nil, err
		}
		script := tengo.NewScript([]byte(string(src) + "\n" + scriptLifecycleDispatch))
		_ = script.Add("__phase", "")
		_ = script.Add("__engine", map[string]any{})
		_ = script.Add("__state", map[string]any{})
		_ = script.Add("__current_state", "")
		script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
		base, err = script.Compile()
		if err != nil {
			return nil, fmt.Errorf("compile %s: %w", path, err)
		}
		s.compiled[path] = base
	}

	rt := &enemyScript{
		path:      path,
		compiled:  base.Clone(),
		stateData: &tengo.Map{Value: map[string]tengo.Object{}},
		current:   "idle",
	}
	// initial_state is only defined after the script body has run once.
	noop := &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	if err := rt.runPhase("noop", noop); err != nil {
		return nil, err
	}
	if rt.compiled.IsDefined("initial_state") {
		if st := strings.TrimSpace(objectAsString(rt.compiled.Get("initial_state").Object())); st != "" {
			rt.current = st
		}
	}
	s.scripts[ent] = rt
	return rt, nil
}

// pruneScripts drops runtimes of enemies that no longer exist.
func (s *EnemyBehaviorSystem) pruneScripts(w *ecs.World) {
	for ent := range s.scripts {
		if !ecs.IsAlive(w, ent) {
			delete(s.scripts, ent)
		}
	}
}

func (rt *enemyScript) runPhase(phase string, engine *tengo.ImmutableMap) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil script runtime")
	}
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	if err := rt.compiled.Set("__current_state", rt.current); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func pairObject(x, y float64) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: x}, &tengo.Float{Value: y}}}
}

func buildEnemyScriptEngine(ctx *EnemyContext, rt *enemyScript) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}
	fn := func(name string, f func(args ...tengo.Object) tengo.Object) {
		values[name] = &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
			return f(args...), nil
		}}
	}

	fn("transition", func(args ...tengo.Object) tengo.Object {
		if len(args) < 1 {
			return tengo.FalseValue
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" {
			return tengo.FalseValue
		}
		rt.pending = name
		return tengo.TrueValue
	})
	fn("distance", func(...tengo.Object) tengo.Object {
		return &tengo.Float{Value: ctx.Dist}
	})
	fn("aggro_range", func(...tengo.Object) tengo.Object {
		return &tengo.Float{Value: ctx.Enemy.AggroRange}
	})
	fn("in_reach", func(...tengo.Object) tengo.Object {
		return boolObject(ctx.InReach(ctx.Enemy.AttackRange))
	})
	fn("cooldown_ready", func(...tengo.Object) tengo.Object {
		return boolObject(ctx.CooldownReady())
	})
	fn("move_toward", func(args ...tengo.Object) tengo.Object {
		mult := 1.0
		if len(args) > 0 {
			if v, ok := tengo.ToFloat64(args[0]); ok {
				mult = v
			}
		}
		ctx.MoveToward(ctx.PlayerX, ctx.PlayerY, mult)
		return tengo.TrueValue
	})
	fn("attack", func(...tengo.Object) tengo.Object {
		if !ctx.CooldownReady() || !ctx.InReach(ctx.Enemy.AttackRange) {
			return tengo.FalseValue
		}
		ctx.Strike(1)
		ctx.ResetCooldown()
		return tengo.TrueValue
	})
	fn("set_state", func(args ...tengo.Object) tengo.Object {
		if len(args) > 0 {
			ctx.Enemy.State = scriptEnemyState(objectAsString(args[0]))
		}
		return tengo.TrueValue
	})
	fn("get_position", func(...tengo.Object) tengo.Object {
		return pairObject(ctx.X, ctx.Y)
	})
	fn("get_player_position", func(...tengo.Object) tengo.Object {
		return pairObject(ctx.PlayerX, ctx.PlayerY)
	})

	return &tengo.ImmutableMap{Value: values}
}

func scriptEnemyState(name string) component.EnemyState {
	switch name {
	case "chasing":
		return component.EnemyChasing
	case "retreating":
		return component.EnemyRetreating
	case "windup":
		return component.EnemyWindup
	case "charging":
		return component.EnemyCharging
	}
	return component.EnemyIdle
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
