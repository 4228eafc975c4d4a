// Package deploy turns ContainerVM resource files into Compute Engine
// instances.
//
// The main operations are:
//   - Create: load a resource, resolve the provider configuration, build the
//     instance descriptor, submit it and optionally wait for the insert
//     operation
//   - Render: build the descriptor without submitting it
//
// Status:
//
// Create records its progress in the resource status (phase, conditions,
// operation name, instance link) and can write it back to the resource file.
// A resource that is already Submitting or Provisioned is not submitted again.
// There is no cleanup on failure: the insert either created the instance or
// it did not.
package deploy
