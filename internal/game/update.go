package game

import (
	"context"

	"github.com/samdwyer/dungeondelve/internal/entity"
	"github.com/samdwyer/dungeondelve/internal/logger"
)

// Tick advances the run by one frame: the attack cooldown drains, discrete
// actions fire, then every entity updates in creation order. Nothing happens
// outside PhasePlaying.
func (e *Engine) Tick(ctx context.Context, in Input) error {
	if e.run == nil || e.run.Phase != PhasePlaying {
		return nil
	}

	e.run.AttackCooldown -= e.cfg.CooldownStep

	if in.Attack {
		e.swing()
	}
	if in.Interact {
		descended, err := e.Interact(ctx)
		if err != nil {
			return err
		}
		if descended {
			return nil
		}
	}

	for _, h := range e.model.Handles() {
		ent := e.model.Get(h)
		if ent == nil {
			continue
		}
		e.update(ent, in)
		if e.run.Phase != PhasePlaying {
			break
		}
	}
	return nil
}

func (e *Engine) update(ent *entity.Entity, in Input) {
	switch ent.Kind {
	case entity.KindPlayer:
		e.updatePlayer(ent, in)
	case entity.KindEnemy:
		e.updateEnemy(ent)
	case entity.KindAttack:
		e.updateAttack(ent)
	}
}

func (e *Engine) updatePlayer(p *entity.Entity, in Input) {
	p.Steer(in.Up, in.Down, in.Left, in.Right, e.cfg.PlayerSpeed)
	p.Moving = p.DX != 0 || p.DY != 0

	if enemy := e.model.FirstHit(e.model.Enemies, p.Rect, p.Handle); enemy != nil {
		e.run.Phase = PhaseGameOver
		e.message = "You died."
		logger.Log.WithField("level", e.run.Level).Info("player died")
		e.emit(EventPlayerDied, e.message)
		return
	}

	p.Player.InRange = entity.NoHandle
	if it := e.model.FirstHit(e.model.Interactables, p.Rect, p.Handle); it != nil {
		p.Player.InRange = it.Handle
	}

	e.resolver.Move(p, e.cfg.PlayerSpeed)
	p.ClearVelocity()
}

func (e *Engine) updateEnemy(en *entity.Entity) {
	if en.IsDying() {
		if en.AdvanceDeath() {
			e.model.Remove(en.Handle)
		}
		return
	}

	en.Wander(e.cfg.EnemySpeed, e.rng)
	en.Moving = en.DX != 0 || en.DY != 0
	e.resolver.Move(en, e.cfg.EnemySpeed)
	en.ClearVelocity()
}

func (e *Engine) updateAttack(a *entity.Entity) {
	if !a.Attack.Hit {
		if enemy := e.model.FirstHit(e.model.Enemies, a.Rect, a.Handle); enemy != nil {
			e.kill(enemy)
			a.Attack.Hit = true
		}
	}
	if a.AdvanceAttack() {
		e.model.Remove(a.Handle)
	}
}

// kill marks an enemy as dying and takes it out of the live enemy group so
// it can no longer hurt the player or block the stair.
func (e *Engine) kill(en *entity.Entity) {
	if !en.Kill() {
		return
	}
	e.model.Enemies.Remove(en.Handle)
	e.run.Kills++
	e.emit(EventEnemyDied, "")
}

// swing spawns an attack one tile ahead of the player when the cooldown
// allows it.
func (e *Engine) swing() bool {
	if !e.run.AttackReady() {
		return false
	}
	p := e.model.Player()
	if p == nil {
		return false
	}

	dx, dy := e.tileStep(p.Facing)
	e.model.Spawn(entity.NewAttack(p.Rect.Translate(dx, dy), p.Facing))
	e.run.AttackCooldown = e.cfg.AttackCooldown
	e.emit(EventSwordSwing, "")
	return true
}
