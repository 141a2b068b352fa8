package services

import "takeout/entity"

const RoleSystem = "system"

// Actor คือผู้กระทำของแต่ละ call ส่งเข้ามาตรง ๆ ไม่อ่านจาก context
type Actor struct {
	ID   uint
	Role string
}

func Customer(id uint) Actor { return Actor{ID: id, Role: entity.RoleCustomer} }
func Staff(id uint) Actor    { return Actor{ID: id, Role: entity.RoleStaff} }

// SystemActor is used by the background sweeps; id 0 in audit columns.
var SystemActor = Actor{ID: 0, Role: RoleSystem}

func (a Actor) IsStaff() bool { return a.Role == entity.RoleStaff || a.Role == RoleSystem }
