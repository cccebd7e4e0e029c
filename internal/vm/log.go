package vm

import (
	"little3/internal/log"
)

// WithLogger is an option function that configures the VM to log to a
// particular logger.
func WithLogger(logger *log.Logger) OptionFn {
	return func(vm *LC3) {
		vm.log = logger
	}
}

func (vm *LC3) LogValue() log.Value {
	return log.GroupValue(
		log.String("PC", vm.PC.String()),
		log.String("IR", vm.IR.String()),
		log.String("COND", vm.COND.String()),
		log.String("MCR", vm.MCR.String()),
		log.Any("REG", vm.REG),
	)
}
