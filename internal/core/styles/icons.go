package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconCheckList = " "
	IconTodo      = "○"
	IconDone      = "●"
	IconCalendar  = "" // 
	IconSort      = "" // 
	IconFilter    = "" // 
	IconGear      = "" // 
)

// Section fold markers.
var (
	IconExpanded  = "▾"
	IconCollapsed = "▸"
)

// Notification level icons.
var (
	IconNotifyInfo    = "" // 
	IconNotifyWarning = "" // 
	IconNotifyError   = "" // 
)
