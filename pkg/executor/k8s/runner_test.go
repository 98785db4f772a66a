// Copyright 2025 Hydrostack Authors
// SPDX-License-Identifier: Apache-2.0

package k8s

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"

	"github.com/hydrostack/ras-compute/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Project: "/project",
		Plans:   []config.Plan{{Number: "01"}},
		Executor: config.Executor{
			Kind:       config.ExecutorK8s,
			Image:      "ghcr.io/hydrostack/ras:6.5",
			Namespace:  "hydro",
			RunTimeout: 30 * time.Second,
		},
	}
}

func TestNewRunnerWithClient(t *testing.T) {
	r, err := NewRunnerWithClient(fake.NewSimpleClientset(), testConfig())
	require.NoError(t, err)
	assert.Equal(t, config.ExecutorK8s, r.Kind())
	assert.Equal(t, "ghcr.io/hydrostack/ras:6.5", r.image)
	assert.Equal(t, "hydro", r.namespace)

	cfg := testConfig()
	cfg.Executor.Image = "Not A Valid Image!!"
	_, err = NewRunnerWithClient(fake.NewSimpleClientset(), cfg)
	require.Error(t, err)

	cfg = testConfig()
	cfg.Executor.Namespace = ""
	r, err = NewRunnerWithClient(fake.NewSimpleClientset(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "default", r.namespace)
}

func TestJobName(t *testing.T) {
	assert.Equal(t, "ras-run-01", jobName(config.Plan{Number: "01"}))
	assert.Equal(t, "ras-run-plan-2a", jobName(config.Plan{Number: "Plan 2a"}))
}

func TestBuildJob(t *testing.T) {
	r, err := NewRunnerWithClient(fake.NewSimpleClientset(), testConfig())
	require.NoError(t, err)

	job := r.buildJob("ras-run-01", config.Plan{
		Number: "01",
		File:   "plan01.p01",
		Args:   []string{"--unsteady"},
	})

	assert.Equal(t, "ras-run-01", job.Name)
	assert.Equal(t, "hydro", job.Namespace)
	assert.Equal(t, "01", job.Labels[planLabel])
	require.Len(t, job.Spec.Template.Spec.Containers, 1)
	c := job.Spec.Template.Spec.Containers[0]
	assert.Equal(t, "ghcr.io/hydrostack/ras:6.5", c.Image)
	assert.Equal(t, []string{"plan01.p01", "--unsteady"}, c.Args)
	assert.Equal(t, corev1.RestartPolicyNever, job.Spec.Template.Spec.RestartPolicy)
	assert.Equal(t, int32(0), *job.Spec.BackoffLimit)
}

// completeOnCreate marks every created Job with the given terminal condition
// so Execute's first poll sees a finished run.
func completeOnCreate(clientset *fake.Clientset, condition batchv1.JobConditionType) {
	clientset.PrependReactor("create", "jobs",
		func(action k8stesting.Action) (bool, runtime.Object, error) {
			job := action.(k8stesting.CreateAction).GetObject().(*batchv1.Job)
			job.Status.Conditions = append(job.Status.Conditions, batchv1.JobCondition{
				Type:   condition,
				Status: corev1.ConditionTrue,
			})
			return false, nil, nil
		})
}

func solverPod(namespace, job string) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      job + "-abcde",
			Namespace: namespace,
			Labels: map[string]string{
				appLabel:   appName,
				"job-name": job,
			},
		},
	}
}

func TestExecuteCompletedJob(t *testing.T) {
	clientset := fake.NewSimpleClientset(solverPod("hydro", "ras-run-01"))
	completeOnCreate(clientset, batchv1.JobComplete)

	r, err := NewRunnerWithClient(clientset, testConfig())
	require.NoError(t, err)

	exe, err := r.Execute(context.Background(), config.Plan{Number: "01", File: "plan01.p01"})
	require.NoError(t, err)
	assert.Equal(t, 0, exe.ExitCode)
	// The fake clientset serves canned log content.
	assert.Equal(t, "fake logs", exe.Messages)
	assert.Equal(t, exe.Output, exe.Messages)
}

func TestExecuteFailedJob(t *testing.T) {
	clientset := fake.NewSimpleClientset(solverPod("hydro", "ras-run-02"))
	completeOnCreate(clientset, batchv1.JobFailed)

	r, err := NewRunnerWithClient(clientset, testConfig())
	require.NoError(t, err)

	exe, err := r.Execute(context.Background(), config.Plan{Number: "02"})
	require.NoError(t, err)
	assert.Equal(t, 1, exe.ExitCode)
}

func TestExecuteMissingPodDegrades(t *testing.T) {
	clientset := fake.NewSimpleClientset()
	completeOnCreate(clientset, batchv1.JobComplete)

	r, err := NewRunnerWithClient(clientset, testConfig())
	require.NoError(t, err)

	exe, err := r.Execute(context.Background(), config.Plan{Number: "03"})
	require.NoError(t, err)
	assert.Equal(t, 0, exe.ExitCode)
	assert.Empty(t, exe.Messages)
}

func TestExecuteIgnoresPrefixOverlappingPod(t *testing.T) {
	// Plan "1" must not pick up the pod of the concurrently running plan
	// "10" even though "ras-run-1" is a name prefix of "ras-run-10-...".
	clientset := fake.NewSimpleClientset(solverPod("hydro", "ras-run-10"))
	completeOnCreate(clientset, batchv1.JobComplete)

	r, err := NewRunnerWithClient(clientset, testConfig())
	require.NoError(t, err)

	exe, err := r.Execute(context.Background(), config.Plan{Number: "1"})
	require.NoError(t, err)
	assert.Equal(t, 0, exe.ExitCode)
	assert.Empty(t, exe.Messages)
}
