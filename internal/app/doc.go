// Package app wires one pipeline run together: configuration, telemetry,
// the input source, the two processing phases and the report writers.
//
// # Run Flow
//
//	1. Open the input (local, stdin, HTTP(S) or S3)
//	2. Aggregate every data row per taxid
//	3. Filter and summarize each taxon
//	4. Write the report in every configured format
//	5. Snapshot runtime memory and flush metrics
//
// Each step runs in its own trace span and its duration is recorded in the
// phase histogram. The run id and trace id are attached to every log line.
//
// # Usage
//
//	application, err := app.NewApplication(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	defer application.Shutdown(context.Background())
//	report, err := application.Run(ctx, "assembly_summary.txt")
//
// # Error Handling
//
// Errors are returned to the caller as AppErrors; the app never exits the
// process. A failed input or a cancelled context aborts the run before any
// report is written.
package app
