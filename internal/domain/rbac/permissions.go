// Package rbac contiene el motor de políticas por rol: permisos, ruta por defecto,
// nombre visible y menú. Funciones puras, sin I/O ni estado mutable.
package rbac

// Permissions conjunto fijo de permisos derivado del rol. Nunca se persiste.
type Permissions struct {
	// Dashboard
	ViewDashboard bool `json:"viewDashboard"`

	// Productos
	ViewProducts  bool `json:"viewProducts"`
	CreateProduct bool `json:"createProduct"`
	EditProduct   bool `json:"editProduct"`
	DeleteProduct bool `json:"deleteProduct"`

	// Órdenes
	ViewOrders       bool `json:"viewOrders"`
	CreateOrder      bool `json:"createOrder"`
	EditOrder        bool `json:"editOrder"`
	CancelOrder      bool `json:"cancelOrder"`
	ViewOrderDetails bool `json:"viewOrderDetails"`

	// Usuarios
	ViewUsers      bool `json:"viewUsers"`
	CreateUser     bool `json:"createUser"`
	EditUser       bool `json:"editUser"`
	DeleteUser     bool `json:"deleteUser"`
	ChangeUserRole bool `json:"changeUserRole"`

	// Tienda
	ViewStore    bool `json:"viewStore"`
	MakePurchase bool `json:"makePurchase"`

	// Reportes
	ViewReports bool `json:"viewReports"`
}

// Nombres de permiso (camelCase, como los usa la capa de presentación).
const (
	PermViewDashboard    = "viewDashboard"
	PermViewProducts     = "viewProducts"
	PermCreateProduct    = "createProduct"
	PermEditProduct      = "editProduct"
	PermDeleteProduct    = "deleteProduct"
	PermViewOrders       = "viewOrders"
	PermCreateOrder      = "createOrder"
	PermEditOrder        = "editOrder"
	PermCancelOrder      = "cancelOrder"
	PermViewOrderDetails = "viewOrderDetails"
	PermViewUsers        = "viewUsers"
	PermCreateUser       = "createUser"
	PermEditUser         = "editUser"
	PermDeleteUser       = "deleteUser"
	PermChangeUserRole   = "changeUserRole"
	PermViewStore        = "viewStore"
	PermMakePurchase     = "makePurchase"
	PermViewReports      = "viewReports"
)

// entries devuelve los pares nombre/valor en orden de declaración.
func (p Permissions) entries() []struct {
	name  string
	value bool
} {
	return []struct {
		name  string
		value bool
	}{
		{PermViewDashboard, p.ViewDashboard},
		{PermViewProducts, p.ViewProducts},
		{PermCreateProduct, p.CreateProduct},
		{PermEditProduct, p.EditProduct},
		{PermDeleteProduct, p.DeleteProduct},
		{PermViewOrders, p.ViewOrders},
		{PermCreateOrder, p.CreateOrder},
		{PermEditOrder, p.EditOrder},
		{PermCancelOrder, p.CancelOrder},
		{PermViewOrderDetails, p.ViewOrderDetails},
		{PermViewUsers, p.ViewUsers},
		{PermCreateUser, p.CreateUser},
		{PermEditUser, p.EditUser},
		{PermDeleteUser, p.DeleteUser},
		{PermChangeUserRole, p.ChangeUserRole},
		{PermViewStore, p.ViewStore},
		{PermMakePurchase, p.MakePurchase},
		{PermViewReports, p.ViewReports},
	}
}

// Has consulta un permiso por nombre. Un nombre desconocido es false.
func (p Permissions) Has(name string) bool {
	for _, e := range p.entries() {
		if e.name == name {
			return e.value
		}
	}
	return false
}

// Granted nombres de los permisos concedidos, en orden de declaración.
func (p Permissions) Granted() []string {
	out := make([]string, 0, 18)
	for _, e := range p.entries() {
		if e.value {
			out = append(out, e.name)
		}
	}
	return out
}

// Names todos los nombres de permiso en orden de declaración.
func Names() []string {
	es := Permissions{}.entries()
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, e.name)
	}
	return out
}

func allPermissions() Permissions {
	return Permissions{
		ViewDashboard:    true,
		ViewProducts:     true,
		CreateProduct:    true,
		EditProduct:      true,
		DeleteProduct:    true,
		ViewOrders:       true,
		CreateOrder:      true,
		EditOrder:        true,
		CancelOrder:      true,
		ViewOrderDetails: true,
		ViewUsers:        true,
		CreateUser:       true,
		EditUser:         true,
		DeleteUser:       true,
		ChangeUserRole:   true,
		ViewStore:        true,
		MakePurchase:     true,
		ViewReports:      true,
	}
}
