package symbols

type (
	FuncID  uint32
	BlockID uint32
	VarID   uint32
	TypeID  uint32
)

const (
	NoFuncID  FuncID  = 0
	NoBlockID BlockID = 0
	NoVarID   VarID   = 0
	NoTypeID  TypeID  = 0
)

func (id FuncID) IsValid() bool  { return id != NoFuncID }
func (id BlockID) IsValid() bool { return id != NoBlockID }
func (id VarID) IsValid() bool   { return id != NoVarID }
func (id TypeID) IsValid() bool  { return id != NoTypeID }

type id interface {
	~uint32
}
