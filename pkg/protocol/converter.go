package protocol

import (
	"bomberai/pkg/ai"
	"bomberai/pkg/core"
)

// 世界快照的线格式
//
//	Snapshot { 1 frame, 2 width, 3 height, 4 tiles(bytes, 每格一字节), 5 repeated UnitState, 6 repeated Bomb, 7 repeated PowerUp }
//	UnitState { 1 id, 2 kind, 3 x, 4 y, 5 moving, 6 target_x, 7 target_y, 8 bomb_limit, 9 active_bombs, 10 explosion_range, 11 dead }
//	Bomb { 1 id, 2 owner_id, 3 x, 4 y, 5 range, 6 fuse_left, 7 damage_left, 8 exploded, 9 repeated DangerZone }
//	DangerZone { 1 x, 2 y, 3 dx, 4 dy, 5 index, 6 active }
//	PowerUp { 1 x, 2 y, 3 type }
//	Decision { 1 unit_id, 2 kind, 3 dx, 4 dy, 5 target_x, 6 target_y, 7 state }

func encodeSnapshot(e *encoder, s *core.Snapshot) {
	e.int(1, int64(s.Frame))
	e.int(2, int64(s.Width))
	e.int(3, int64(s.Height))

	tiles := make([]byte, len(s.Tiles))
	for i, t := range s.Tiles {
		tiles[i] = byte(t)
	}
	e.bytes(4, tiles)

	for i := range s.Units {
		u := &s.Units[i]
		e.message(5, func(sub *encoder) { encodeUnit(sub, u) })
	}
	for i := range s.Bombs {
		b := &s.Bombs[i]
		e.message(6, func(sub *encoder) { encodeBomb(sub, b) })
	}
	for _, p := range s.PowerUps {
		e.message(7, func(sub *encoder) {
			sub.sint(1, p.Cell.X)
			sub.sint(2, p.Cell.Y)
			sub.int(3, int64(p.Type))
		})
	}
}

func decodeSnapshot(data []byte) (core.Snapshot, error) {
	var s core.Snapshot
	err := decodeFields(data, func(f field) error {
		switch f.num {
		case 1:
			s.Frame = int32(f.int())
		case 2:
			s.Width = f.int()
		case 3:
			s.Height = f.int()
		case 4:
			s.Tiles = make([]core.TileType, len(f.b))
			for i, t := range f.b {
				s.Tiles[i] = core.TileType(t)
			}
		case 5:
			u, err := decodeUnit(f.b)
			if err != nil {
				return err
			}
			s.Units = append(s.Units, u)
		case 6:
			b, err := decodeBomb(f.b)
			if err != nil {
				return err
			}
			s.Bombs = append(s.Bombs, b)
		case 7:
			var p core.PowerUp
			err := decodeFields(f.b, func(f field) error {
				switch f.num {
				case 1:
					p.Cell.X = f.sint()
				case 2:
					p.Cell.Y = f.sint()
				case 3:
					p.Type = core.PowerUpType(f.int())
				}
				return nil
			})
			if err != nil {
				return err
			}
			s.PowerUps = append(s.PowerUps, p)
		}
		return nil
	})
	return s, err
}

func encodeUnit(e *encoder, u *core.UnitState) {
	e.int(1, int64(u.ID))
	e.int(2, int64(u.Kind))
	e.sint(3, u.Cell.X)
	e.sint(4, u.Cell.Y)
	e.bool(5, u.Moving)
	e.sint(6, u.Target.X)
	e.sint(7, u.Target.Y)
	e.int(8, int64(u.BombLimit))
	e.int(9, int64(u.ActiveBombs))
	e.int(10, int64(u.ExplosionRange))
	e.bool(11, u.Dead)
}

func decodeUnit(data []byte) (core.UnitState, error) {
	var u core.UnitState
	err := decodeFields(data, func(f field) error {
		switch f.num {
		case 1:
			u.ID = f.int()
		case 2:
			u.Kind = core.UnitKind(f.int())
		case 3:
			u.Cell.X = f.sint()
		case 4:
			u.Cell.Y = f.sint()
		case 5:
			u.Moving = f.bool()
		case 6:
			u.Target.X = f.sint()
		case 7:
			u.Target.Y = f.sint()
		case 8:
			u.BombLimit = f.int()
		case 9:
			u.ActiveBombs = f.int()
		case 10:
			u.ExplosionRange = f.int()
		case 11:
			u.Dead = f.bool()
		}
		return nil
	})
	return u, err
}

func encodeBomb(e *encoder, b *core.Bomb) {
	e.int(1, int64(b.ID))
	e.int(2, int64(b.OwnerID))
	e.sint(3, b.Cell.X)
	e.sint(4, b.Cell.Y)
	e.int(5, int64(b.Range))
	e.int(6, int64(b.FuseLeft))
	e.int(7, int64(b.DamageLeft))
	e.bool(8, b.Exploded)
	for _, z := range b.Zones {
		e.message(9, func(sub *encoder) {
			sub.sint(1, z.Cell.X)
			sub.sint(2, z.Cell.Y)
			sub.sint(3, z.Direction.X)
			sub.sint(4, z.Direction.Y)
			sub.int(5, int64(z.Index))
			sub.bool(6, z.Active)
		})
	}
}

func decodeBomb(data []byte) (core.Bomb, error) {
	var b core.Bomb
	err := decodeFields(data, func(f field) error {
		switch f.num {
		case 1:
			b.ID = f.int()
		case 2:
			b.OwnerID = f.int()
		case 3:
			b.Cell.X = f.sint()
		case 4:
			b.Cell.Y = f.sint()
		case 5:
			b.Range = f.int()
		case 6:
			b.FuseLeft = f.int()
		case 7:
			b.DamageLeft = f.int()
		case 8:
			b.Exploded = f.bool()
		case 9:
			var z core.DangerZone
			err := decodeFields(f.b, func(f field) error {
				switch f.num {
				case 1:
					z.Cell.X = f.sint()
				case 2:
					z.Cell.Y = f.sint()
				case 3:
					z.Direction.X = f.sint()
				case 4:
					z.Direction.Y = f.sint()
				case 5:
					z.Index = f.int()
				case 6:
					z.Active = f.bool()
				}
				return nil
			})
			if err != nil {
				return err
			}
			b.Zones = append(b.Zones, z)
		}
		return nil
	})
	return b, err
}

func encodeDecision(e *encoder, d *UnitDecision) {
	e.int(1, int64(d.UnitID))
	e.int(2, int64(d.Decision.Kind))
	e.sint(3, d.Decision.Direction.X)
	e.sint(4, d.Decision.Direction.Y)
	e.sint(5, d.Decision.Target.X)
	e.sint(6, d.Decision.Target.Y)
	e.int(7, int64(d.State))
}

func decodeDecision(data []byte) (UnitDecision, error) {
	var d UnitDecision
	err := decodeFields(data, func(f field) error {
		switch f.num {
		case 1:
			d.UnitID = f.int()
		case 2:
			d.Decision.Kind = ai.DecisionKind(f.int())
		case 3:
			d.Decision.Direction.X = f.sint()
		case 4:
			d.Decision.Direction.Y = f.sint()
		case 5:
			d.Decision.Target.X = f.sint()
		case 6:
			d.Decision.Target.Y = f.sint()
		case 7:
			d.State = ai.State(f.int())
		}
		return nil
	})
	return d, err
}
